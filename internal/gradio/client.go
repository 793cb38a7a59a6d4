package gradio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/hunyport/huny/internal/models"
)

const (
	// DefaultTarget is the space the portal talks to when nothing else
	// is configured.
	DefaultTarget = "tencent/Hunyuan-T1"
	// DefaultAPI is the well-known chat procedure exposed by the space.
	DefaultAPI = "/chat"

	apiPrefix = "/gradio_api/call"
)

// Client is a live, validated link to one gradio space. It is owned by
// exactly one conversation; concurrent Predict calls on the same
// Client must be serialized by the caller.
type Client struct {
	target string
	root   string
	api    string
	client *http.Client
	debug  bool
}

type Option func(*Client)

// WithHTTPClient swaps the underlying http client, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout caps every remote round trip. Zero means no timeout,
// which is also the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithAPI overrides the default remote procedure name used by Predict.
func WithAPI(api string) Option {
	return func(c *Client) {
		if api != "" {
			c.api = api
		}
	}
}

// Connect validates target and establishes a link to the space behind
// it by fetching its app config. Every failure mode - empty or
// malformed target, unreachable host, space not running - surfaces as
// a models.ConnectionSetupError. Connect never retries.
func Connect(ctx context.Context, target string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(target) == "" {
		return nil, &models.ConnectionSetupError{Target: target, Err: errors.New("target is empty")}
	}
	c := &Client{
		target: target,
		api:    DefaultAPI,
		client: &http.Client{},
		debug:  misc.Truthy(os.Getenv("DEBUG")),
	}
	for _, opt := range opts {
		opt(c)
	}
	root, err := rootURL(target)
	if err != nil {
		return nil, &models.ConnectionSetupError{Target: target, Err: err}
	}
	c.root = root
	if err := c.validate(ctx); err != nil {
		return nil, &models.ConnectionSetupError{Target: target, Err: err}
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("connected to space '%v' at root: '%v'\n", target, root))
	}
	return c, nil
}

// Target returns the endpoint target this client was connected to.
func (c *Client) Target() string { return c.target }

// rootURL maps a target onto the base URL of its gradio app. Full URLs
// pass through, '<owner>/<name>' space ids map onto the huggingface
// subdomain scheme.
func rootURL(target string) (string, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", fmt.Errorf("failed to parse target as URL: %w", err)
		}
		return strings.TrimRight(u.String(), "/"), nil
	}
	parts := strings.Split(target, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("target '%v' is neither a URL nor a '<owner>/<name>' space id", target)
	}
	sub := fmt.Sprintf("%v-%v", subdomainify(parts[0]), subdomainify(parts[1]))
	return fmt.Sprintf("https://%v.hf.space", sub), nil
}

func subdomainify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

type spaceConfig struct {
	Version string `json:"version"`
	Root    string `json:"root"`
}

func (c *Client) validate(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.root+"/config", nil)
	if err != nil {
		return fmt.Errorf("failed to create config request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach space: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code when fetching space config: %v", resp.Status)
	}
	var conf spaceConfig
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		return fmt.Errorf("failed to decode space config: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("space config version: '%v'\n", conf.Version))
	}
	return nil
}
