package taiga

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.taiga.io/api/v1"

// Client talks to the Taiga REST API. Authenticate must succeed before any
// fetch call. All requests share one rate limiter so a burst of fetches in
// a single run stays polite.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 2),
	}
}

// Authenticate exchanges credentials for a bearer token and stores it for
// subsequent calls.
func (c *Client) Authenticate(ctx context.Context, username, password string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(AuthRequest{Type: "normal", Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("failed to encode auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("auth failed (status %d): %s", resp.StatusCode, string(raw))
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	if auth.AuthToken == "" {
		return fmt.Errorf("auth response carried no token")
	}

	c.token = auth.AuthToken
	return nil
}

// ProjectBySlug fetches the project record for a slug.
func (c *Client) ProjectBySlug(ctx context.Context, slug string) (*Project, error) {
	var project Project
	query := url.Values{"slug": {slug}}
	if err := c.get(ctx, "/projects/by_slug", query, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Milestones fetches all sprints for a project.
func (c *Client) Milestones(ctx context.Context, projectID int) ([]Milestone, error) {
	var milestones []Milestone
	query := url.Values{"project": {strconv.Itoa(projectID)}}
	if err := c.get(ctx, "/milestones", query, &milestones); err != nil {
		return nil, err
	}
	return milestones, nil
}

// UserStories fetches stories for a project, restricted to one milestone
// when milestoneID is non-zero. Elements may be nil when the API returns
// null list entries; callers must not assume otherwise.
func (c *Client) UserStories(ctx context.Context, projectID, milestoneID int) ([]*UserStory, error) {
	var stories []*UserStory
	if err := c.get(ctx, "/userstories", scopeQuery(projectID, milestoneID), &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// Tasks fetches tasks for a project, restricted to one milestone when
// milestoneID is non-zero. Elements may be nil, as with UserStories.
func (c *Client) Tasks(ctx context.Context, projectID, milestoneID int) ([]*Task, error) {
	var tasks []*Task
	if err := c.get(ctx, "/tasks", scopeQuery(projectID, milestoneID), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func scopeQuery(projectID, milestoneID int) url.Values {
	query := url.Values{"project": {strconv.Itoa(projectID)}}
	if milestoneID != 0 {
		query.Set("milestone", strconv.Itoa(milestoneID))
	}
	return query
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d) on %s: %s", resp.StatusCode, path, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
