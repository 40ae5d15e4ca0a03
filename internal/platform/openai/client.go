package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/promptstyle"
)

// Client is the language model boundary used by the analyzers and the memory service.
type Client interface {
	// GenerateJSON returns the raw reply text for a json_schema constrained call.
	GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, temperature float64) (string, error)
	GenerateText(ctx context.Context, system, user string, temperature float64) (string, error)
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	EmbedModel string
	MaxOutput  int64
}

type client struct {
	log        *logger.Logger
	api        *openai.Client
	model      string
	embedModel string
	maxOutput  int64
}

// NewClient builds a Responses API client. Retries are disabled; callers fall back instead.
func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o"
	}
	embed := strings.TrimSpace(cfg.EmbedModel)
	if embed == "" {
		embed = "text-embedding-3-small"
	}
	maxOut := cfg.MaxOutput
	if maxOut <= 0 {
		maxOut = 1200
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(base, "/")+"/"))
	}
	api := openai.NewClient(opts...)

	return &client{
		log:        log.With("client", "OpenAIClient"),
		api:        &api,
		model:      model,
		embedModel: embed,
		maxOutput:  maxOut,
	}, nil
}

func (c *client) params(system, user string, temperature float64) responses.ResponseNewParams {
	return responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(c.maxOutput),
		Instructions:    openai.String(system),
		Temperature:     openai.Float(temperature),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(user, responses.EasyInputMessageRoleUser),
			},
		},
	}
}

func (c *client) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, temperature float64) (string, error) {
	if schemaName == "" {
		return "", errors.New("schemaName required")
	}
	if schema == nil {
		return "", errors.New("schema required")
	}
	params := c.params(promptstyle.ApplySystem(system, "json"), user, temperature)
	params.Text = responses.ResponseTextConfigParam{
		Format: responses.ResponseFormatTextConfigUnionParam{
			OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
				Name:        schemaName,
				Schema:      schema,
				Strict:      openai.Bool(true),
				Description: openai.String(schemaName + " JSON"),
				Type:        "json_schema",
			},
		},
	}
	return c.send(ctx, params)
}

func (c *client) GenerateText(ctx context.Context, system, user string, temperature float64) (string, error) {
	return c.send(ctx, c.params(promptstyle.ApplySystem(system, "text"), user, temperature))
}

func (c *client) send(ctx context.Context, params responses.ResponseNewParams) (string, error) {
	start := time.Now()
	resp, err := c.api.Responses.New(ctx, params)
	if err != nil {
		c.log.Debug("responses call failed", "model", c.model, "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return "", fmt.Errorf("openai responses: %w", err)
	}
	text := resp.OutputText()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no output_text found in response")
	}
	c.log.Debug("responses call ok",
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)
	return text, nil
}

func (c *client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}
	clean := make([]string, len(inputs))
	for i := range inputs {
		s := strings.TrimSpace(inputs[i])
		if s == "" {
			s = " "
		}
		clean[i] = s
	}

	resp, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: clean},
		Model: openai.EmbeddingModel(c.embedModel),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}

	out := make([][]float32, len(clean))
	for i, d := range resp.Data {
		idx := int(d.Index)
		if idx < 0 || idx >= len(out) {
			idx = i
		}
		if idx >= len(out) {
			continue
		}
		vec := make([]float32, len(d.Embedding))
		for j, f := range d.Embedding {
			vec[j] = float32(f)
		}
		out[idx] = vec
	}
	for i := range out {
		if len(out[i]) == 0 {
			return nil, fmt.Errorf("openai embeddings missing index %d: requested=%d returned=%d", i, len(clean), len(resp.Data))
		}
	}
	return out, nil
}
