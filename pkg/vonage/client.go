package vonage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Dr-Agentic/bedrock-vonage-toolkit/pkg/features/credentials"
)

const (
	defaultAPIHost    = "https://api.nexmo.com"
	defaultRestHost   = "https://rest.nexmo.com"
	defaultSecretName = "vonage/api-credentials"
)

type CredentialsSource interface {
	Resolve(ctx context.Context, secretName string) (credentials.Credentials, error)
}

type Status struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProviderError is a non-success status reported by the Vonage API. Code and
// text pass through from the vendor.
type ProviderError struct {
	Code string
	Text string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("vonage: status %s: %s", e.Code, e.Text)
}

// Client calls the Vonage REST APIs. Hosts are overridable for tests.
type Client struct {
	HTTPClient *http.Client
	Creds      CredentialsSource
	SecretName string
	APIHost    string
	RestHost   string
}

func NewClient(creds CredentialsSource) *Client {
	secretName := os.Getenv("VONAGE_CREDENTIALS_SECRET_NAME")
	if secretName == "" {
		secretName = defaultSecretName
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Creds:      creds,
		SecretName: secretName,
		APIHost:    defaultAPIHost,
		RestHost:   defaultRestHost,
	}
}

func (c *Client) credentials(ctx context.Context) (credentials.Credentials, error) {
	return c.Creds.Resolve(ctx, c.SecretName)
}

func (c *Client) postForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vonage: unexpected response %d: %s", res.StatusCode, body)
	}
	return body, nil
}
