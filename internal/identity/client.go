package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"

	"Chirp/internal/core/users"
	"Chirp/internal/metrics"
)

// maxErrorBody bounds how much of an error response we read
const maxErrorBody = 64 * 1024

// Client talks to the identity provider's Backend API (Clerk-compatible /v1/users).
// It implements users.Directory. No retries: failures surface to the caller.
type Client struct {
	httpClient *http.Client
	logger     logrus.FieldLogger
	baseURL    string
	secretKey  string
}

// NewClient creates a directory client. timeout bounds each request end to end.
func NewClient(baseURL, secretKey string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		secretKey:  secretKey,
	}
}

// GetUsersByIDs returns the users with the given ids in one request
func (c *Client) GetUsersByIDs(ctx context.Context, ids []string, limit int) ([]*users.User, error) {
	return c.listUsers(ctx, "by_id", "user_id", ids, limit)
}

// GetUsersByUsernames returns the users with the given usernames in one request
func (c *Client) GetUsersByUsernames(ctx context.Context, usernames []string, limit int) ([]*users.User, error) {
	return c.listUsers(ctx, "by_username", "username", usernames, limit)
}

func (c *Client) listUsers(ctx context.Context, kind, param string, values []string, limit int) (result []*users.User, err error) {
	if len(values) == 0 {
		return []*users.User{}, nil
	}
	if limit <= 0 || limit > users.MaxDirectoryBatch {
		limit = users.MaxDirectoryBatch
	}

	start := time.Now()
	defer func() {
		metrics.RecordDirectoryLookup(kind, time.Since(start), err)
	}()

	query := url.Values{}
	for _, v := range values {
		query.Add(param, v)
	}
	query.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/users?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call identity directory: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var records []userRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %w", err)
	}

	result = make([]*users.User, 0, len(records))
	for _, r := range records {
		result = append(result, r.toUser())
	}

	c.logger.WithFields(logrus.Fields{
		"kind":      kind,
		"requested": len(values),
		"returned":  len(result),
	}).Debug("identity directory lookup")

	return result, nil
}

func (c *Client) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}

	var envelope errorResponse
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Errors) > 0 {
		first := envelope.Errors[0]
		apiErr.Code = first.Code
		apiErr.Message = first.Message
		if first.LongMessage != "" {
			apiErr.Message = first.LongMessage
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
