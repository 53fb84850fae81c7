// Command token prints an operator token for the watchlist write routes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	jwtmw "alpha_vantage/internal/platform/jwt"
)

func main() {
	subject := flag.String("sub", "operator", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	scopes := flag.String("scope", jwtmw.ScopeWatchlistWrite, "space separated scopes")
	flag.Parse()

	gen, err := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), *ttl)
	if err != nil {
		log.Fatalf("%s: %v", jwtmw.EnvKeyJWTSecret, err)
	}
	token, err := gen.GenerateToken(*subject, strings.Fields(*scopes)...)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
