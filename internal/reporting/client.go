package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"bikpis/internal/config"
	apperrors "bikpis/internal/errors"
	"bikpis/internal/files"
	"bikpis/internal/infrastructure"
)

const (
	tokenPath   = "/oauth/token"
	exportsPath = "/api/v2/analytics/reporting/exports"
)

// Client is the reporting API client
type Client struct {
	apiURL      string
	credentials *clientcredentials.Config
	httpClient  *http.Client
	authed      *http.Client
	manager     *files.Manager
	logger      *slog.Logger
}

// NewClient creates a new reporting API client
func NewClient(cfg config.GenesysConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = infrastructure.NopLogger()
	}
	return &Client{
		apiURL: strings.TrimRight(cfg.APIURL, "/"),
		credentials: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     strings.TrimRight(cfg.LoginURL, "/") + tokenPath,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: &http.Client{Timeout: cfg.Timeout},
		manager:    files.NewManager(logger),
		logger:     logger,
	}
}

// SetHTTPClient sets the underlying HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Authenticate fetches an access token. Every later request carries it as
// a bearer token.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.credentials.ClientID == "" || c.credentials.ClientSecret == "" {
		return apperrors.NewConfigError("client id and client secret are required", nil)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.credentials.Token(ctx)
	if err != nil {
		return apperrors.NewAuthError("authentication failed", err).
			WithContext("token_url", c.credentials.TokenURL)
	}
	if token.AccessToken == "" {
		return apperrors.NewAuthError("authentication response has no access token", nil)
	}

	source := oauth2.ReuseTokenSource(token, c.credentials.TokenSource(ctx))
	c.authed = oauth2.NewClient(ctx, source)
	c.authed.Timeout = c.httpClient.Timeout

	c.logger.Info("Authenticated with reporting API")
	return nil
}

func (c *Client) client() (*http.Client, error) {
	if c.authed == nil {
		return nil, apperrors.NewAuthError("client is not authenticated", nil)
	}
	return c.authed, nil
}

// ListExports returns every export the API reports
func (c *Client) ListExports(ctx context.Context) ([]Export, error) {
	httpClient, err := c.client()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+exportsPath, nil)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to list exports", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read exports response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewNetworkError(
			fmt.Sprintf("exports request failed (status %d)", resp.StatusCode), nil).
			WithContext("body", truncate(string(body), 512))
	}

	var parsed exportsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.NewParsingError("failed to decode exports response", err)
	}
	return parsed.Entities, nil
}

// Download saves the export's payload as dir/<name>.csv and returns the path
func (c *Client) Download(ctx context.Context, export Export, dir string) (string, error) {
	httpClient, err := c.client()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, export.DownloadURL, nil)
	if err != nil {
		return "", apperrors.NewNetworkError("failed to create download request", err).
			WithContext("export", export.Name)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewNetworkError("download failed", err).WithContext("export", export.Name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewNetworkError(
			fmt.Sprintf("download failed (status %d)", resp.StatusCode), nil).
			WithContext("export", export.Name).
			WithContext("status", resp.StatusCode)
	}

	path := filepath.Join(dir, export.FileName())
	if _, err := c.manager.WriteFrom(path, resp.Body); err != nil {
		return "", err
	}
	return path, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
