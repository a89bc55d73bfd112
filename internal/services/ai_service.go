package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"github.com/theroslabs/vitals-tracker/internal/domain"
	apperrors "github.com/theroslabs/vitals-tracker/internal/errors"
	"github.com/theroslabs/vitals-tracker/internal/logger"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-1.5-flash"

const rewriteInstruction = "You are a concise, non-diagnostic health assistant. " +
	"Given the structured summary below, write a short (1-2 sentence) user-facing insight. " +
	"Be neutral and avoid medical diagnosis. If there are alarming flags, say 'consider seeking medical advice'."

// AIService rewrites structured summaries into short narratives.
// Gemini is the primary provider with OpenAI as fallback; at least one
// key must be configured.
type AIService struct {
	geminiClient *genai.Client
	openaiClient *openai.Client
}

func NewAIService(ctx context.Context, geminiAPIKey, openaiAPIKey string) (*AIService, error) {
	if geminiAPIKey == "" && openaiAPIKey == "" {
		return nil, fmt.Errorf("no AI provider configured")
	}

	svc := &AIService{}
	if geminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(geminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		svc.geminiClient = client
	}
	if openaiAPIKey != "" {
		svc.openaiClient = openai.NewClient(openaiAPIKey)
	}
	return svc, nil
}

// Rewrite implements domain.NarrativeRewriter.
func (s *AIService) Rewrite(ctx context.Context, summary *domain.Summary) (string, error) {
	prompt, err := buildRewritePrompt(summary)
	if err != nil {
		return "", err
	}

	if s.geminiClient != nil {
		text, err := s.rewriteWithGemini(ctx, prompt)
		if err == nil {
			return text, nil
		}
		logger.Warn("Gemini rewrite failed", "error", err)
		if s.openaiClient == nil {
			return "", apperrors.NewExternalAPIError(err, "Gemini")
		}
	}

	text, err := s.rewriteWithOpenAI(ctx, prompt)
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "OpenAI")
	}
	return text, nil
}

func (s *AIService) rewriteWithGemini(ctx context.Context, prompt string) (string, error) {
	model := s.geminiClient.GenerativeModel(geminiModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty Gemini response")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected Gemini response part type")
	}
	return strings.TrimSpace(string(text)), nil
}

func (s *AIService) rewriteWithOpenAI(ctx context.Context, prompt string) (string, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   120,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty OpenAI response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildRewritePrompt(summary *domain.Summary) (string, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to serialize summary: %w", err)
	}
	return fmt.Sprintf("%s\n\nStructuredSummary:\n%s\n\nInsight:", rewriteInstruction, data), nil
}
