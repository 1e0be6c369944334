package generator

import (
	"context"
	"log"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/KonchadaBhuvan/my-pro/internal/config"
	"github.com/KonchadaBhuvan/my-pro/internal/models"
)

// LLMClient is the interface all generator backends satisfy.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generator turns a topic selection into a validated question set.
type Generator struct {
	llm   LLMClient
	model string
}

func NewGenerator(cfg config.Config) *Generator {
	var llm LLMClient
	model := "mock"

	switch {
	case cfg.UseCLI:
		llm = NewCLIClient(cfg.CLIPath)
		model = "claude-cli"
		log.Println("Generator using Claude CLI (local plan)")
	case cfg.MockGenerator:
		llm = NewMockClient()
		log.Println("Generator using mock data")
	default:
		model = cfg.AnthropicModel
		llm = NewAPIClient(model)
		log.Println("Generator using Anthropic API:", model)
	}

	return &Generator{llm: llm, model: model}
}

// NewGeneratorWithClient is used by tests and callers that supply their own backend.
func NewGeneratorWithClient(llm LLMClient, model string) *Generator {
	return &Generator{llm: llm, model: model}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateQuiz makes a single generation call and defensively parses the
// result. The provider output is untrusted text; malformed items are dropped
// and an unusable response fails with a generation_parse error carrying a
// snippet of the raw output.
func (g *Generator) GenerateQuiz(ctx context.Context, topics []string, numQuestions int, difficulty models.Difficulty) ([]models.Question, error) {
	if len(topics) == 0 {
		return nil, models.NewInvalidRequest("topics are required")
	}
	for _, t := range topics {
		if t == "" {
			return nil, models.NewInvalidRequest("topics must be non-empty strings")
		}
	}
	if numQuestions <= 0 {
		return nil, models.NewInvalidRequest("numQuestions must be positive")
	}
	if !models.ValidDifficulties[difficulty] {
		return nil, models.NewInvalidRequest("difficulty must be 'easy', 'medium', or 'hard'")
	}

	prompt := BuildQuizPrompt(topics, numQuestions, difficulty)

	raw, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		if models.KindOf(err) != "" {
			return nil, err
		}
		return nil, models.NewUpstream("generation request failed", err)
	}

	questions, err := ParseQuestions(raw)
	if err != nil {
		return nil, err
	}

	if len(questions) != numQuestions {
		log.Printf("[gen] requested %d questions, got %d usable", numQuestions, len(questions))
	}

	return questions, nil
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
	apiKey string
}

func NewAPIClient(model string) *APIClient {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &APIClient{client: &client, model: model, apiKey: apiKey}
}

func (c *APIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", models.NewConfiguration("generation API key not configured")
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   8192,
		Temperature: param.NewOpt(0.8),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	// One call, no internal retry. Failures surface to the caller.
	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", models.NewUpstream("anthropic API call failed", err)
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return "", models.NewUpstream("no text content in API response", nil)
	}

	return responseText, nil
}
