package oauth

import (
	"context"
	"net/http"

	"baggage-service/pkg/logger"

	"golang.org/x/oauth2/clientcredentials"
)

// TracerOAuth handles OAuth authentication with the WorldTracer bridge.
// SITA-style integrations issue machine tokens via the client
// credentials grant; stations without an OAuth tenant fall back to the
// static API-key header set by the tracer client itself.
type TracerOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewTracerOAuth creates a new tracer OAuth handler
func NewTracerOAuth(clientID, clientSecret, tokenURL string, logger logger.Logger) *TracerOAuth {
	return &TracerOAuth{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       []string{"tracing.read", "tracing.write"},
		},
		logger: logger,
	}
}

// Configured reports whether a client-credentials tenant is set up.
func (o *TracerOAuth) Configured() bool {
	return o.config.ClientID != "" && o.config.TokenURL != ""
}

// HTTPClient returns an http.Client that injects and refreshes bearer
// tokens for every bridge request.
func (o *TracerOAuth) HTTPClient(ctx context.Context) *http.Client {
	o.logger.Info("Using OAuth client credentials for tracer bridge", "tokenURL", o.config.TokenURL)
	return o.config.Client(ctx)
}
