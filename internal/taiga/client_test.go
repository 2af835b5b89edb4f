package taiga

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestAuthenticate(t *testing.T) {
	t.Run("stores the bearer token for later calls", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth":
				var req AuthRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "normal", req.Type)
				assert.Equal(t, "bot", req.Username)
				json.NewEncoder(w).Encode(AuthResponse{AuthToken: "tok-123"})
			case "/projects/by_slug":
				assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
				assert.Equal(t, "demo", r.URL.Query().Get("slug"))
				json.NewEncoder(w).Encode(Project{ID: 9, Name: "Demo", Slug: "demo"})
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
		})

		ctx := context.Background()
		require.NoError(t, c.Authenticate(ctx, "bot", "secret"))

		project, err := c.ProjectBySlug(ctx, "demo")
		require.NoError(t, err)
		assert.Equal(t, 9, project.ID)
	})

	t.Run("auth failure is fatal", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"_error_message": "invalid credentials"}`, http.StatusUnauthorized)
		})
		err := c.Authenticate(context.Background(), "bot", "wrong")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("empty token rejected", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(AuthResponse{})
		})
		err := c.Authenticate(context.Background(), "bot", "secret")
		assert.Error(t, err)
	})
}

func TestUserStories(t *testing.T) {
	t.Run("null list entries survive decoding as nil", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", r.URL.Query().Get("project"))
			w.Write([]byte(`[{"id": 1, "ref": 11, "subject": "First"}, null, {"id": 2, "ref": 12, "subject": "Second"}]`))
		})

		stories, err := c.UserStories(context.Background(), 7, 0)
		require.NoError(t, err)
		require.Len(t, stories, 3)
		assert.Nil(t, stories[1])
		assert.Equal(t, 11, stories[0].Ref)
	})

	t.Run("milestone scoping added when non-zero", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "42", r.URL.Query().Get("milestone"))
			w.Write([]byte(`[]`))
		})
		_, err := c.UserStories(context.Background(), 7, 42)
		require.NoError(t, err)
	})
}

func TestTasks(t *testing.T) {
	t.Run("partial records keep optional nesting nil", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": 5, "ref": 50, "subject": "Fix build",
				"status_extra_info": {"name": "In Progress"},
				"user_story": 3, "user_story_extra_info": {"id": 3, "ref": 30}}]`))
		})

		tasks, err := c.Tasks(context.Background(), 7, 0)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "In Progress", tasks[0].StatusExtraInfo.Name)
		assert.Nil(t, tasks[0].AssignedToExtraInfo)
		assert.Equal(t, 30, tasks[0].UserStoryExtraInfo.Ref)
	})

	t.Run("API error propagates with status", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		_, err := c.Tasks(context.Background(), 7, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}

func TestMilestones(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "Sprint 1", "estimated_start": "2026-08-20", "estimated_finish": "2026-09-02"},
			{"id": 2, "name": "Backlog grooming", "estimated_start": null, "estimated_finish": null}]`))
	})

	milestones, err := c.Milestones(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, milestones, 2)
	assert.Equal(t, "Sprint 1", milestones[0].Name)
	assert.Nil(t, milestones[1].EstimatedStart)
}
