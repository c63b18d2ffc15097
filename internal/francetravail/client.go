package francetravail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAuthURL = "https://entreprise.pole-emploi.fr/connexion/oauth2/access_token?realm=%2Fpartenaire"
	defaultAPIURL  = "https://api.francetravail.io/partenaire/offresdemploi"

	// Scope required by the v2 offers API.
	oauthScope = "api_offresdemploiv2 o2dsoffre"

	requestTimeout = 15 * time.Second

	// DefaultMaxResults is the search page size used when callers do not ask
	// for a specific one.
	DefaultMaxResults = 20
)

// ErrMissingCredentials is returned when the client id or secret is not set.
// Callers degrade to empty search results instead of failing the request.
var ErrMissingCredentials = errors.New("france travail credentials are not configured")

// Client talks to the France Travail offers API.
type Client struct {
	logger       *zap.Logger
	clientID     string
	clientSecret string

	HTTPClient *http.Client
	AuthURL    string
	APIURL     string
}

func New(logger *zap.Logger, clientID, clientSecret string) *Client {
	return &Client{
		logger:       logger,
		clientID:     strings.TrimSpace(clientID),
		clientSecret: strings.TrimSpace(clientSecret),
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
		AuthURL: defaultAuthURL,
		APIURL:  defaultAPIURL,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate exchanges the client credentials for a bearer token. The token
// is not cached; the orchestrator fetches one per top-level request.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", oauthScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}

	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request: bad status: %s", resp.Status)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	if token.AccessToken == "" {
		return "", errors.New("token response contains no access token")
	}

	c.logger.Debug("obtained france travail token")

	return token.AccessToken, nil
}
