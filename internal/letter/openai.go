package letter

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	defaultModel   = "gpt-3.5-turbo"
	maxDescription = 500
)

// OpenAI generates a letter tailored to the posting using a chat model.
type OpenAI struct {
	model   llms.Model
	profile Profile
}

func NewOpenAI(apiKey string, profile Profile) (*OpenAI, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(defaultModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &OpenAI{model: llm, profile: profile}, nil
}

func (g *OpenAI) CoverLetter(ctx context.Context, title, company, description string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, g.prompt(title, company, description),
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(500),
	)
	if err != nil {
		return "", fmt.Errorf("generate cover letter: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("model returned an empty letter")
	}
	return out, nil
}

func (g *OpenAI) prompt(title, company, description string) string {
	if len(description) > maxDescription {
		description = description[:maxDescription]
	}
	p := g.profile
	return fmt.Sprintf(`Write a professional cover letter for this job application:

Job Title: %s
Company: %s
Job Description: %s

Candidate Information:
- Name: %s
- Education: %s
- Key Skills: %s
- Certifications: %s
- Notable Project: %s

Requirements:
1. Keep it under 300 words
2. Show genuine enthusiasm for THIS specific role
3. Highlight 2-3 most relevant skills
4. Mention the key project if relevant
5. Professional but warm tone
6. Strong call to action
7. No generic phrases

Format: Professional business letter without address headers.`,
		title, company, description,
		p.Name, p.Education, joinFirst(p.Skills, 5), strings.Join(p.Certifications, ", "), p.KeyProject,
	)
}
