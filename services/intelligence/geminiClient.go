// File: services/intelligence/geminiClient.go
package intelligence

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "models/gemini-1.5-pro"

const replySystemPrompt = "You are a legal professional answering a short client message. " +
	"Reply in at most two sentences, stay factual and do not give binding legal advice."

// GeminiReplySource generates counterpart replies with Gemini, carrying a
// short per-entity conversation context.
type GeminiReplySource struct {
	model    *genai.GenerativeModel
	ctxStore *RedisContextStore
}

var _ ReplySource = (*GeminiReplySource)(nil)

// NewGeminiReplySource builds a Gemini-backed reply source. The context
// store is optional.
func NewGeminiReplySource(apiKey string, ctxStore *RedisContextStore) (*GeminiReplySource, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiReplySource{
		model:    client.GenerativeModel(geminiModel),
		ctxStore: ctxStore,
	}, nil
}

func (g *GeminiReplySource) Reply(ctx context.Context, entityID, prompt string) (string, error) {
	var history *ChatContext
	if g.ctxStore != nil {
		var err error
		history, err = g.ctxStore.Get(ctx, entityID)
		if err != nil {
			history = &ChatContext{}
		}
	} else {
		history = &ChatContext{}
	}

	var sb strings.Builder
	sb.WriteString(replySystemPrompt)
	sb.WriteString("\n\n")
	for _, turn := range history.Turns {
		sb.WriteString("Client: " + turn.Prompt + "\n")
		sb.WriteString("You: " + turn.Reply + "\n")
	}
	sb.WriteString("Client: " + prompt + "\nYou:")

	resp, err := g.model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			out.WriteString(string(textPart))
		}
	}
	reply := strings.TrimSpace(out.String())

	if g.ctxStore != nil && reply != "" {
		history.Turns = append(history.Turns, ChatTurn{Prompt: prompt, Reply: reply})
		// Context persistence is best effort; the reply already stands.
		_ = g.ctxStore.Set(ctx, entityID, history)
	}
	return reply, nil
}
