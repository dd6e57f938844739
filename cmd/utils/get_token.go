package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"checkin-service/internal/infrastructure/config"
	"checkin-service/internal/infrastructure/oauth"
	"checkin-service/pkg/logger"
)

// Fetches an access token from the flight data provider using the configured
// client credentials. Handy for poking the schedule API with curl.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.AmadeusClientID == "" || cfg.AmadeusClientSecret == "" {
		fmt.Fprintln(os.Stderr, "AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set")
		os.Exit(1)
	}

	amadeusOAuth := oauth.NewAmadeusOAuth(cfg.AmadeusBaseURL, cfg.AmadeusClientID, cfg.AmadeusClientSecret, logger.NewLogger())
	token, err := amadeusOAuth.Token(context.Background())
	if err != nil {
		log.Fatalf("Failed to fetch token: %v", err)
	}

	fmt.Printf("Access Token: %s\n", token.AccessToken)
	fmt.Printf("Expires At:   %s\n", token.Expiry)
}
