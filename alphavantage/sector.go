package alphavantage

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

const functionSector = "SECTOR"

// Sector is the realtime and historical performance of the S&P 500 sectors.
type Sector struct {
	information   string
	lastRefreshed string
	ranks         []SectorRank
}

func (s *Sector) Information() string   { return s.information }
func (s *Sector) LastRefreshed() string { return s.lastRefreshed }

// Ranks are ordered by rank letter, "A" (real-time) first.
func (s *Sector) Ranks() []SectorRank { return s.ranks }

// Rank returns the performance table with the given letter.
func (s *Sector) Rank(letter string) (SectorRank, bool) {
	for _, r := range s.ranks {
		if r.letter == letter {
			return r, true
		}
	}
	return SectorRank{}, false
}

// SectorRank is one performance table, e.g. Rank C for 5 day performance.
type SectorRank struct {
	letter      string
	period      string
	performance map[string]decimal.Decimal
}

func (r SectorRank) Letter() string { return r.letter }

// Period is the label after the letter, e.g. "Real-Time Performance".
func (r SectorRank) Period() string { return r.period }

// Performance returns the change of a sector in percent, e.g. Performance("Energy").
func (r SectorRank) Performance(sector string) (decimal.Decimal, bool) {
	v, ok := r.performance[sector]
	return v, ok
}

// Sectors lists the sector names in sorted order.
func (r SectorRank) Sectors() []string {
	out := make([]string, 0, len(r.performance))
	for k := range r.performance {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func decodeSector(function string, body []byte) (*Sector, error) {
	top, err := decodeObject(function, body)
	if err != nil {
		return nil, err
	}
	var rankKeys []string
	for k := range top {
		if strings.HasPrefix(k, "Rank ") {
			rankKeys = append(rankKeys, k)
		}
	}
	if len(rankKeys) == 0 {
		if verr := vendorError(top); verr != nil {
			return nil, verr
		}
		return nil, &DecodeError{Function: function, Field: "Rank", Err: errMissingField}
	}
	slices.Sort(rankKeys)

	meta, err := decodeMeta(function, top)
	if err != nil {
		return nil, err
	}
	p := parser{function: function}
	s := &Sector{
		information:   p.requiredField(meta, "Information"),
		lastRefreshed: p.requiredField(meta, "Last Refreshed"),
		ranks:         make([]SectorRank, 0, len(rankKeys)),
	}
	for _, k := range rankKeys {
		letter, period, ok := strings.Cut(strings.TrimPrefix(k, "Rank "), ": ")
		if !ok || letter == "" {
			return nil, &DecodeError{Function: function, Field: k, Err: errMissingField}
		}
		var raw map[string]string
		if err := json.Unmarshal(top[k], &raw); err != nil {
			return nil, &DecodeError{Function: function, Field: k, Err: err}
		}
		r := SectorRank{letter: letter, period: period, performance: make(map[string]decimal.Decimal, len(raw))}
		for sector, v := range raw {
			r.performance[sector] = p.percent(k+" "+sector, v)
		}
		s.ranks = append(s.ranks, r)
	}
	if p.err != nil {
		return nil, p.err
	}
	return s, nil
}

// SectorBuilder requests SECTOR.
type SectorBuilder struct {
	client *Client
}

// Sector returns a builder for the sector performance tables.
func (c *Client) Sector() *SectorBuilder {
	return &SectorBuilder{client: c}
}

// URL returns the request URL without sending anything.
func (b *SectorBuilder) URL() (string, error) {
	return b.client.buildURL(functionSector, nil, nil)
}

// JSON fetches and decodes the sector performance.
func (b *SectorBuilder) JSON(ctx context.Context) (*Sector, error) {
	return fetch(ctx, b.client, functionSector, nil, nil, decodeSector)
}
