package standup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"standup/internal/board"
)

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Summarizer turns the run metrics into a short model-written narrative
// for the standup description. Entirely optional: any failure degrades to
// an empty summary and the report goes out without it.
type Summarizer struct {
	url        string
	model      string
	httpClient *http.Client
}

func NewSummarizer(url, model string) *Summarizer {
	if model == "" {
		model = "gemma3"
	}
	return &Summarizer{
		url:        strings.TrimRight(url, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Narrative asks the model for a one-sentence summary of the current state.
func (s *Summarizer) Narrative(ctx context.Context, sprint *board.Sprint, m board.Metrics) string {
	sprintName := "no active sprint"
	if sprint != nil {
		sprintName = sprint.Name
	}

	prompt := fmt.Sprintf(
		"Write exactly one upbeat sentence summarizing a team's progress for a daily standup message.\n\n"+
			"STRICT RULES:\n"+
			"1. One sentence only, no bullet points or markdown\n"+
			"2. PRESERVE all numbers exactly as given\n"+
			"3. Do not invent facts beyond the figures below\n\n"+
			"Sprint: %s\n"+
			"Stories complete: %d of %d (%d%%)\n"+
			"Blocked items: %d\n",
		sprintName, m.Done, m.Total, m.Completion, m.Blocked)

	reqBody, err := json.Marshal(ollamaChatRequest{
		Model:    s.model,
		Messages: []ollamaMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	})
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/api/chat", bytes.NewReader(reqBody))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	var parsed ollamaChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}

	return strings.TrimSpace(parsed.Message.Content)
}
