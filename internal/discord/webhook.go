package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client posts messages to a single webhook URL.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Execute posts one JSON message. Oversized embed lists are split into
// sequential calls, each within the per-call embed cap; the content line
// rides on the first call only.
func (c *Client) Execute(ctx context.Context, msg Message) error {
	chunks := ChunkEmbeds(msg.Embeds)
	if chunks == nil {
		return c.post(ctx, Message{Content: msg.Content})
	}

	for i, embeds := range chunks {
		out := Message{Embeds: embeds}
		if i == 0 {
			out.Content = msg.Content
		}
		if err := c.post(ctx, out); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook error (status %d): %s", resp.StatusCode, string(raw))
	}
	return nil
}

// ExecuteFile posts a multipart message carrying one binary attachment,
// typically a rendered board image, plus optional plain-text content.
func (c *Client) ExecuteFile(ctx context.Context, content, filename string, file []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if content != "" {
		payload, err := json.Marshal(Message{Content: content})
		if err != nil {
			return fmt.Errorf("failed to encode payload json: %w", err)
		}
		if err := w.WriteField("payload_json", string(payload)); err != nil {
			return fmt.Errorf("failed to write payload json: %w", err)
		}
	}

	part, err := w.CreateFormFile("files[0]", filename)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return fmt.Errorf("failed to write attachment: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook error (status %d): %s", resp.StatusCode, string(raw))
	}
	return nil
}

// NotifyError makes a best-effort attempt to report a failed run on the
// same webhook. Its own failure is swallowed so it cannot mask the
// original error.
func (c *Client) NotifyError(ctx context.Context, runErr error) {
	msg := Message{Embeds: []Embed{{
		Title:       "⚠️ Standup Automation Failed",
		Description: fmt.Sprintf("```%v```", runErr),
		Color:       ColorError,
	}}}
	_ = c.Execute(ctx, msg)
}
