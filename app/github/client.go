package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RESTClient talks to the GitHub REST v3 API for a single repository.
type RESTClient struct {
	baseURL    string
	owner      string
	repo       string
	token      string
	userAgent  string
	httpClient *http.Client
}

func NewRESTClient(baseURL, owner, repo, token, userAgent string) *RESTClient {
	return &RESTClient{
		baseURL:   baseURL,
		owner:     owner,
		repo:      repo,
		token:     token,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// rawIssue mirrors the wire format; labels arrive as objects and the author
// is nested under "user".
type rawIssue struct {
	Number int    `json:"number"`
	State  string `json:"state"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

func (c *RESTClient) GetIssue(ctx context.Context, number int) (*Issue, error) {
	var raw rawIssue
	path := fmt.Sprintf("/repos/%s/%s/issues/%d", c.owner, c.repo, number)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch issue #%d: %w", number, err)
	}

	issue := &Issue{
		Number: raw.Number,
		State:  raw.State,
		Title:  raw.Title,
		Body:   raw.Body,
		User:   raw.User.Login,
	}
	for _, l := range raw.Labels {
		issue.Labels = append(issue.Labels, l.Name)
	}
	return issue, nil
}

func (c *RESTClient) UpdateIssue(ctx context.Context, number int, update IssueUpdate) error {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d", c.owner, c.repo, number)
	if err := c.do(ctx, http.MethodPatch, path, update, nil); err != nil {
		return fmt.Errorf("failed to update issue #%d: %w", number, err)
	}
	return nil
}

func (c *RESTClient) CreateComment(ctx context.Context, number int, body string) error {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments", c.owner, c.repo, number)
	payload := map[string]string{"body": body}
	if err := c.do(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("failed to comment on issue #%d: %w", number, err)
	}
	return nil
}

func (c *RESTClient) AddLabels(ctx context.Context, number int, names []string) error {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/labels", c.owner, c.repo, number)
	payload := map[string][]string{"labels": names}
	if err := c.do(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("failed to add labels to issue #%d: %w", number, err)
	}
	return nil
}

func (c *RESTClient) RemoveLabel(ctx context.Context, number int, name string) error {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/labels/%s", c.owner, c.repo, number, name)
	err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		// A label that is already absent is the desired end state.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("failed to remove label %q from issue #%d: %w", name, number, err)
	}
	return nil
}

func (c *RESTClient) ListLabels(ctx context.Context) ([]Label, error) {
	var labels []Label
	path := fmt.Sprintf("/repos/%s/%s/labels?per_page=100", c.owner, c.repo)
	if err := c.do(ctx, http.MethodGet, path, nil, &labels); err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

func (c *RESTClient) CreateLabel(ctx context.Context, label Label) error {
	path := fmt.Sprintf("/repos/%s/%s/labels", c.owner, c.repo)
	if err := c.do(ctx, http.MethodPost, path, label, nil); err != nil {
		return fmt.Errorf("failed to create label %q: %w", label.Name, err)
	}
	return nil
}

func (c *RESTClient) UpdateLabel(ctx context.Context, label Label) error {
	path := fmt.Sprintf("/repos/%s/%s/labels/%s", c.owner, c.repo, label.Name)
	if err := c.do(ctx, http.MethodPatch, path, label, nil); err != nil {
		return fmt.Errorf("failed to update label %q: %w", label.Name, err)
	}
	return nil
}

func (c *RESTClient) DeleteLabel(ctx context.Context, name string) error {
	path := fmt.Sprintf("/repos/%s/%s/labels/%s", c.owner, c.repo, name)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete label %q: %w", name, err)
	}
	return nil
}

// APIError carries the HTTP status of a failed GitHub API call so callers
// can distinguish not-found from real failures.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api error: %d %s", e.StatusCode, e.Body)
}

func (c *RESTClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
