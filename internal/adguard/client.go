// Package adguard provides access to the AdGuard Home DNS rewrite API.
package adguard

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mark-gargan/adguard-rewrite-sync/internal/domain"
)

// RewriteStore defines the interface for managing the appliance's DNS
// rewrite rules.
type RewriteStore interface {
	// List returns the current rewrite rules in appliance order.
	List(ctx context.Context) ([]domain.RewriteRule, error)
	// Add creates a rewrite rule. The API is additive-only: adding a rule
	// for an existing domain does not replace the old one.
	Add(ctx context.Context, rule domain.RewriteRule) error
	// Delete removes a rewrite rule. The appliance matches on both domain
	// and answer, so the full rule is required, not just the domain.
	Delete(ctx context.Context, rule domain.RewriteRule) error
}

// Client calls the AdGuard Home control API with HTTP Basic auth.
type Client struct {
	httpc *resty.Client
}

// Ensure Client implements RewriteStore.
var _ RewriteStore = (*Client)(nil)

// New creates a new AdGuard Home client.
func New(baseURL, username, password string, timeout time.Duration) *Client {
	httpc := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(username, password).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{httpc: httpc}
}

// List fetches the current rewrite rules.
func (c *Client) List(ctx context.Context) ([]domain.RewriteRule, error) {
	var rules []domain.RewriteRule
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetResult(&rules).
		Get("/control/rewrite/list")
	if err != nil {
		return nil, fmt.Errorf("listing rewrites: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return rules, nil
}

// Add creates a rewrite rule on the appliance.
func (c *Client) Add(ctx context.Context, rule domain.RewriteRule) error {
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetBody(rule).
		Post("/control/rewrite/add")
	if err != nil {
		return fmt.Errorf("adding rewrite for %s: %w", rule.Domain, err)
	}
	return checkStatus(resp)
}

// Delete removes a rewrite rule from the appliance.
func (c *Client) Delete(ctx context.Context, rule domain.RewriteRule) error {
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetBody(rule).
		Post("/control/rewrite/delete")
	if err != nil {
		return fmt.Errorf("deleting rewrite for %s: %w", rule.Domain, err)
	}
	return checkStatus(resp)
}

// checkStatus maps non-2xx responses onto the error taxonomy: 401/403 to
// ErrUnauthorized, anything else to an APIError carrying the body.
func checkStatus(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	code := resp.StatusCode()
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return fmt.Errorf("%w (status %d)", domain.ErrUnauthorized, code)
	}
	return &domain.APIError{
		StatusCode: code,
		Message:    strings.TrimSpace(string(resp.Body())),
	}
}
