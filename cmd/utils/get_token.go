package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// Fetches a WorldTracer bridge access token with the client-credentials
// flow, for checking credentials before deploying the service.
func main() {
	clientID := os.Getenv("TRACER_CLIENT_ID")
	clientSecret := os.Getenv("TRACER_CLIENT_SECRET")
	tokenURL := os.Getenv("TRACER_TOKEN_URL")

	if clientID == "" || clientSecret == "" || tokenURL == "" {
		log.Fatal("TRACER_CLIENT_ID, TRACER_CLIENT_SECRET and TRACER_TOKEN_URL must be set")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{"tracing.read", "tracing.write"},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, err := config.Token(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch token: %v", err)
	}

	fmt.Printf("\nAccess Token: %s\n", token.AccessToken)
	fmt.Printf("Token Type:   %s\n", token.TokenType)
	fmt.Printf("Expires:      %s\n\n", token.Expiry.Format(time.RFC3339))
}
