package oauth

import (
	"context"
	"net/http"
	"time"

	"checkin-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AmadeusOAuth handles client-credentials authentication with the Amadeus
// flight data API.
type AmadeusOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewAmadeusOAuth creates a new Amadeus OAuth handler
func NewAmadeusOAuth(baseURL, clientID, clientSecret string, logger logger.Logger) *AmadeusOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		// Amadeus expects credentials in the form body, not basic auth.
		AuthStyle: oauth2.AuthStyleInParams,
	}

	return &AmadeusOAuth{
		config: config,
		logger: logger,
	}
}

// GetTokenSource returns a token source that refreshes itself as tokens
// expire.
func (o *AmadeusOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return o.config.TokenSource(ctx)
}

// Client returns an HTTP client that injects bearer tokens on every request.
func (o *AmadeusOAuth) Client(ctx context.Context) *http.Client {
	client := oauth2.NewClient(ctx, o.GetTokenSource(ctx))
	client.Timeout = 30 * time.Second
	return client
}

// Token fetches a token immediately. Used by the token debug utility.
func (o *AmadeusOAuth) Token(ctx context.Context) (*oauth2.Token, error) {
	return o.config.Token(ctx)
}
