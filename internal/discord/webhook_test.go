package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientExecute(t *testing.T) {
	t.Run("posts one call for a small message", func(t *testing.T) {
		var got Message
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &got))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		msg := Message{Content: "@everyone", Embeds: []Embed{{Title: "Standup"}}}
		require.NoError(t, c.Execute(context.Background(), msg))

		assert.Equal(t, 1, calls)
		assert.Equal(t, "@everyone", got.Content)
		require.Len(t, got.Embeds, 1)
		assert.Equal(t, "Standup", got.Embeds[0].Title)
	})

	t.Run("splits oversized embed lists across calls", func(t *testing.T) {
		var contents []string
		var counts []int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var msg Message
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &msg))
			contents = append(contents, msg.Content)
			counts = append(counts, len(msg.Embeds))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		msg := Message{Content: "hi", Embeds: make([]Embed, 12)}
		require.NoError(t, c.Execute(context.Background(), msg))

		require.Equal(t, []int{10, 2}, counts)
		assert.Equal(t, "hi", contents[0])
		assert.Empty(t, contents[1], "content rides on the first call only")
	})

	t.Run("non-success response surfaces as error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		err := c.Execute(context.Background(), Message{Content: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestClientExecuteFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		payload := r.FormValue("payload_json")
		var msg Message
		require.NoError(t, json.Unmarshal([]byte(payload), &msg))
		assert.Equal(t, "board card", msg.Content)

		file, header, err := r.FormFile("files[0]")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "board.png", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.ExecuteFile(context.Background(), "board card", "board.png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
}

func TestNotifyError(t *testing.T) {
	t.Run("posts an error embed", func(t *testing.T) {
		var got Message
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &got))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		c.NotifyError(context.Background(), assert.AnError)

		require.Len(t, got.Embeds, 1)
		assert.Equal(t, ColorError, got.Embeds[0].Color)
		assert.Contains(t, got.Embeds[0].Description, assert.AnError.Error())
	})

	t.Run("its own failure is swallowed", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1") // nothing listens here
		assert.NotPanics(t, func() {
			c.NotifyError(context.Background(), assert.AnError)
		})
	})
}
