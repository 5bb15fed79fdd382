package scoreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// API is the subset of the scoring service used by the page views.
type API interface {
	Status(ctx context.Context) (LoginStatus, error)
	Login(ctx context.Context, creds Credentials) error
	Register(ctx context.Context, creds Credentials) error
	Logout(ctx context.Context) error
	Leaderboard(ctx context.Context, game string) ([]LeaderboardEntry, error)
	PersonalScores(ctx context.Context, game string, loggedIn bool) ([]PersonalScoreRecord, error)
	SubmitScore(ctx context.Context, submission ScoreSubmission, loggedIn bool) error
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api status %d", e.Code)
}

// ServerMessage returns the server-provided error text of err, if any.
func ServerMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}

// IsTransport reports whether err happened before any response was read.
func IsTransport(err error) bool {
	var statusErr *StatusError
	return err != nil && !errors.As(err, &statusErr)
}

type Client struct {
	base       *url.URL
	httpClient *http.Client
}

// NewClient builds a client for one page session. The given cookies are the
// browser's and are sent to the API as a same-origin browser would.
func NewClient(baseURL string, timeout time.Duration, cookies []*http.Cookie) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid score api url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if len(cookies) > 0 {
		jar.SetCookies(base, cookies)
	}
	return &Client{
		base: base,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// Cookies returns the cookies currently held for the API origin.
func (c *Client) Cookies() []*http.Cookie {
	return c.httpClient.Jar.Cookies(c.base)
}

func (c *Client) Status(ctx context.Context) (LoginStatus, error) {
	var status LoginStatus
	err := c.do(ctx, http.MethodGet, "/api/status", nil, &status)
	return status, err
}

func (c *Client) Login(ctx context.Context, creds Credentials) error {
	return c.do(ctx, http.MethodPost, "/api/login", creds, nil)
}

func (c *Client) Register(ctx context.Context, creds Credentials) error {
	return c.do(ctx, http.MethodPost, "/api/register", creds, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

func (c *Client) Leaderboard(ctx context.Context, game string) ([]LeaderboardEntry, error) {
	entries := []LeaderboardEntry{}
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard/"+url.PathEscape(game), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) PersonalScores(ctx context.Context, game string, loggedIn bool) ([]PersonalScoreRecord, error) {
	path := "/api/guest-personal-scores/"
	if loggedIn {
		path = "/api/personal-scores/"
	}
	records := []PersonalScoreRecord{}
	if err := c.do(ctx, http.MethodGet, path+url.PathEscape(game), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) SubmitScore(ctx context.Context, submission ScoreSubmission, loggedIn bool) error {
	path := "/api/session-score"
	if loggedIn {
		path = "/api/submit-score"
	}
	return c.do(ctx, http.MethodPost, path, submission, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: reading body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Code:    resp.StatusCode,
			Message: gjson.GetBytes(data, "error").String(),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decoding body: %w", method, path, err)
	}
	return nil
}
