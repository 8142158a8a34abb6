// Package syncclient keeps a live, computed view of one group by pairing a
// websocket subscription with REST reads.
package syncclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"meetsync/internal/models"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// APIError is a non-2xx answer from the REST API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	dialer     *websocket.Dialer
	onError    func(error)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithErrorHandler receives refetch failures that do not end a Watch.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Client) { c.onError = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		dialer:     &websocket.Dialer{HandshakeTimeout: 5 * time.Second},
		onError:    func(error) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func groupPath(groupID string, parts ...string) string {
	p := "/api/groups/" + url.PathEscape(groupID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func (c *Client) CreateGroup(ctx context.Context, input *models.CreateGroupInput) (*models.CreatedGroup, error) {
	var out models.CreatedGroup
	if err := c.do(ctx, http.MethodPost, "/api/groups", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	var out models.Group
	if err := c.do(ctx, http.MethodGet, groupPath(groupID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMember(ctx context.Context, groupID string, input *models.CreateMemberInput) (*models.Member, error) {
	var out models.Member
	if err := c.do(ctx, http.MethodPost, groupPath(groupID, "members"), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	var out []*models.Member
	if err := c.do(ctx, http.MethodGet, groupPath(groupID, "members"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAvailability(ctx context.Context, groupID string) ([]*models.Availability, error) {
	var out []*models.Availability
	if err := c.do(ctx, http.MethodGet, groupPath(groupID, "availability"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpsertAvailability(ctx context.Context, groupID string, input *models.UpsertAvailabilityInput) (*models.Availability, error) {
	var out models.Availability
	if err := c.do(ctx, http.MethodPost, groupPath(groupID, "availability"), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) wsURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

// ErrConnectionClosed is returned by Watch when the server closes the socket.
var ErrConnectionClosed = errors.New("connection closed by server")
