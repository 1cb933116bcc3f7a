package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"versefinder/internal/retrieval"
)

// RerankClient asks a chat-completions model to order candidate passages
// by relevance to a question. It returns indices into the input slice;
// the caller owns repair of any malformed ordering.
type RerankClient struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewRerankClient creates a new rerank client.
func NewRerankClient(baseURL, apiKey, model string) *RerankClient {
	return &RerankClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  http.DefaultClient,
	}
}

const rerankSystemPrompt = "You rank excerpts from books by how directly they answer a reader's question. " +
	"You will receive a question and a numbered list of excerpts. " +
	"Respond with the indices of ALL excerpts ordered from most to least relevant. " +
	"Prefer excerpts that answer the question explicitly over ones that merely mention its words."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchemaFormat struct {
	Type       string `json:"type"`
	JSONSchema struct {
		Name   string         `json:"name"`
		Strict bool           `json:"strict"`
		Schema map[string]any `json:"schema"`
	} `json:"json_schema"`
}

type rerankRequest struct {
	Model          string           `json:"model"`
	Messages       []chatMessage    `json:"messages"`
	Temperature    float64          `json:"temperature"`
	ResponseFormat jsonSchemaFormat `json:"response_format"`
}

type rerankChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type rankedIndices struct {
	RankedIndices []int `json:"ranked_indices"`
}

// RankIndices implements retrieval.Reranker.
func (c *RerankClient) RankIndices(ctx context.Context, question string, passages []retrieval.RerankPassage) ([]int, error) {
	if len(passages) == 0 {
		return nil, fmt.Errorf("no passages to rank")
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	payload := rerankRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: rerankSystemPrompt},
			{Role: "user", Content: buildRerankPrompt(question, passages)},
		},
		Temperature:    0,
		ResponseFormat: rankedIndicesFormat(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp rerankChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	var ranked rankedIndices
	if err := json.Unmarshal([]byte(chatResp.Choices[0].Message.Content), &ranked); err != nil {
		return nil, fmt.Errorf("failed to parse ranking: %w", err)
	}

	return ranked.RankedIndices, nil
}

func buildRerankPrompt(question string, passages []retrieval.RerankPassage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nExcerpts:\n", question)
	for i, p := range passages {
		fmt.Fprintf(&b, "[%d] (from %q) %s\n\n", i, p.BookTitle, p.Text)
	}
	return b.String()
}

func rankedIndicesFormat() jsonSchemaFormat {
	var f jsonSchemaFormat
	f.Type = "json_schema"
	f.JSONSchema.Name = "ranked_indices"
	f.JSONSchema.Strict = true
	f.JSONSchema.Schema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ranked_indices": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required":             []string{"ranked_indices"},
		"additionalProperties": false,
	}
	return f
}
