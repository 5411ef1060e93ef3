package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// Low temperature biases the model toward factual extraction over
	// creative variation; extraction calls must stay repeatable.
	extractionTemperature = 0.2

	defaultModel = "gemini-2.5-flash"
)

// GeminiEngine implements Engine using Google's Gemini models.
type GeminiEngine struct {
	client    *genai.Client
	modelName string
}

// NewGeminiEngine initializes a new Gemini client. apiKey comes from the
// process config; an empty modelName falls back to defaultModel.
func NewGeminiEngine(ctx context.Context, apiKey, modelName string) (*GeminiEngine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = defaultModel
	}
	return &GeminiEngine{client: client, modelName: modelName}, nil
}

// Close cleans up the Gemini client resources.
func (e *GeminiEngine) Close() error {
	return e.client.Close()
}

// GenerateJSON performs one structured-output call. The response schema is
// attached to the model config so shape compliance is enforced server-side.
func (e *GeminiEngine) GenerateJSON(ctx context.Context, req GenerateRequest) (string, error) {
	model := e.client.GenerativeModel(e.modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = req.Schema
	model.SetTemperature(extractionTemperature)
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	// JSON mode should already return bare JSON, but strip markdown
	// fences in case the model wraps its output anyway.
	return cleanJSONString(text), nil
}

// StartChat opens a Gemini chat session. The session object retains the
// turn history, so each Send only carries the new user turn.
func (e *GeminiEngine) StartChat(ctx context.Context, systemPrompt string) (Chat, error) {
	model := e.client.GenerativeModel(e.modelName)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}
	return &geminiChat{session: model.StartChat()}, nil
}

type geminiChat struct {
	session *genai.ChatSession
}

func (c *geminiChat) Send(ctx context.Context, message string) (string, error) {
	resp, err := c.session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini chat error: %w", err)
	}
	return responseText(resp)
}

// responseText flattens the first candidate's text parts.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("Gemini returned empty text parts")
	}
	return b.String(), nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
