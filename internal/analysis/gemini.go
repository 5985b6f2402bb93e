package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModelName is the model used when none is configured.
const DefaultModelName = "gemini-2.0-flash"

const summaryPrompt = "Você é um assistente de finanças pessoais.\n" +
	"A seguir está um resumo numérico das finanças de um usuário em JSON " +
	"(totais mensais, contagens e eventos recentes).\n" +
	"Escreva um resumo curto, em no máximo duas frases, em português do Brasil.\n" +
	"Responda apenas com o texto do resumo, sem Markdown e sem listas.\n"

// Gemini asks the Gemini API for a natural language summary of a
// payload. The API key is read from the environment by the client.
type Gemini struct {
	model string
}

// NewGemini returns an Analyzer backed by the given model name. An
// empty name selects DefaultModelName.
func NewGemini(model string) *Gemini {
	if model == "" {
		model = DefaultModelName
	}

	return &Gemini{model: model}
}

// Analyze implements the Analyzer interface.
func (g *Gemini) Analyze(ctx context.Context, payload Payload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("analyze: marshal payload: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("analyze: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: summaryPrompt + "\n" + string(data)},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("analyze: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("analyze: empty response from model")
	}

	return text, nil
}
