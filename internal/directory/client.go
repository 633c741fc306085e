package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/internal-tools/org-activity-reports/internal/models"
)

const defaultTimeout = 15 * time.Second

// Client fetches member directories from the internal directory-lookup service.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient creates a directory client for the given endpoint.
func NewClient(endpoint string, token string, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("directory endpoint is required")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid directory endpoint: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimRight(endpoint, "/"),
		token:      token,
	}, nil
}

// FetchMembers retrieves and normalizes the directory for the given groups.
func (c *Client) FetchMembers(ctx context.Context, groups []models.GroupTag, includeTerminated bool) ([]models.Member, error) {
	if len(groups) == 0 {
		groups = models.CanonicalGroups()
	}

	labels := make([]string, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, string(g))
	}

	query := url.Values{}
	query.Set("groups", strings.Join(labels, ","))
	if includeTerminated {
		query.Set("include_terminated", "true")
	}
	reqURL := c.endpoint + "/v1/members?" + query.Encode()

	var payload RawPayload
	err := retryOnTransientError(ctx, func() error {
		return c.fetchPayload(ctx, reqURL, &payload)
	})
	if err != nil {
		return nil, err
	}

	return Normalize(payload, includeTerminated), nil
}

func (c *Client) fetchPayload(ctx context.Context, reqURL string, payload *RawPayload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode}
	}

	return json.NewDecoder(resp.Body).Decode(payload)
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("directory service returned status %d", e.code)
}

func retryOnTransientError(ctx context.Context, fn func() error) error {
	const maxRetries = 3
	backoff := 200 * time.Millisecond
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !isTransientError(err) || attempt == maxRetries {
			return err
		}
		if backoff > 2*time.Second {
			backoff = 2 * time.Second
		}
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil
}

func isTransientError(err error) bool {
	statusErr, ok := err.(*statusError)
	if !ok {
		return false
	}
	return statusErr.code == http.StatusTooManyRequests || statusErr.code == http.StatusServiceUnavailable
}
