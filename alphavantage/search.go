package alphavantage

import (
	"context"

	"github.com/shopspring/decimal"
)

const functionSymbolSearch = "SYMBOL_SEARCH"

// Search holds the best matching symbols for a keyword, ordered by match score
// as the API returns them. No matches is a valid, empty result.
type Search struct {
	matches []SearchMatch
}

func (s *Search) Matches() []SearchMatch { return s.matches }

// Best returns the highest scoring match.
func (s *Search) Best() (SearchMatch, bool) {
	if len(s.matches) == 0 {
		return SearchMatch{}, false
	}
	return s.matches[0], true
}

type SearchMatch struct {
	symbol      string
	name        string
	kind        string
	region      string
	marketOpen  string
	marketClose string
	timeZone    string
	currency    string
	matchScore  decimal.Decimal
}

func (m SearchMatch) Symbol() string              { return m.symbol }
func (m SearchMatch) Name() string                { return m.name }
func (m SearchMatch) Type() string                { return m.kind }
func (m SearchMatch) Region() string              { return m.region }
func (m SearchMatch) MarketOpen() string          { return m.marketOpen }
func (m SearchMatch) MarketClose() string         { return m.marketClose }
func (m SearchMatch) TimeZone() string            { return m.timeZone }
func (m SearchMatch) Currency() string            { return m.currency }
func (m SearchMatch) MatchScore() decimal.Decimal { return m.matchScore }

type searchMatchPayload struct {
	Symbol      string `json:"1. symbol"`
	Name        string `json:"2. name"`
	Type        string `json:"3. type"`
	Region      string `json:"4. region"`
	MarketOpen  string `json:"5. marketOpen"`
	MarketClose string `json:"6. marketClose"`
	TimeZone    string `json:"7. timezone"`
	Currency    string `json:"8. currency"`
	MatchScore  string `json:"9. matchScore"`
}

func decodeSearch(function string, body []byte) (*Search, error) {
	const key = "bestMatches"
	top, err := decodeTop(function, body, key)
	if err != nil {
		return nil, err
	}
	var raw []searchMatchPayload
	if err := strictUnmarshal(top[key], &raw); err != nil {
		return nil, &DecodeError{Function: function, Field: key, Err: err}
	}

	p := parser{function: function}
	s := &Search{matches: make([]SearchMatch, 0, len(raw))}
	for _, m := range raw {
		s.matches = append(s.matches, SearchMatch{
			symbol:      p.required("1. symbol", m.Symbol),
			name:        m.Name,
			kind:        m.Type,
			region:      m.Region,
			marketOpen:  m.MarketOpen,
			marketClose: m.MarketClose,
			timeZone:    m.TimeZone,
			currency:    m.Currency,
			matchScore:  p.decimal(m.Symbol+" 9. matchScore", m.MatchScore),
		})
	}
	if p.err != nil {
		return nil, p.err
	}
	return s, nil
}

// SearchBuilder requests SYMBOL_SEARCH.
type SearchBuilder struct {
	client   *Client
	keywords string
}

// Search returns a builder that looks up symbols matching keywords, e.g. "tesco".
func (c *Client) Search(keywords string) *SearchBuilder {
	return &SearchBuilder{client: c, keywords: keywords}
}

func (b *SearchBuilder) params() []Param {
	return []Param{{Key: "keywords", Value: b.keywords}}
}

// URL returns the request URL without sending anything.
func (b *SearchBuilder) URL() (string, error) {
	return b.client.buildURL(functionSymbolSearch, b.params(), nil)
}

// JSON fetches and decodes the matches.
func (b *SearchBuilder) JSON(ctx context.Context) (*Search, error) {
	return fetch(ctx, b.client, functionSymbolSearch, b.params(), nil, decodeSearch)
}
