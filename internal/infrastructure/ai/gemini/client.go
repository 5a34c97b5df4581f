// Package gemini adapts the Google Gemini API to the nutrition estimator and
// recipe assistant ports
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/ports/outbound"
)

const (
	providerName   = "gemini"
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 20 * time.Second
)

// ErrEmptyResponse is returned when the model produced no text
var ErrEmptyResponse = errors.New("gemini: no content generated")

// Config configures the client
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Observer receives request metrics
type Observer interface {
	AIRequest(provider, model, status string, duration time.Duration)
}

// Tracer starts spans around model calls
type Tracer interface {
	StartAISpan(ctx context.Context, provider, model, operation string) (context.Context, trace.Span)
}

// generator is the slice of the Gemini SDK the client needs
type generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateWithImage(ctx context.Context, prompt string, image genai.Blob) (string, error)
	Close() error
}

type sdkGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func (g *sdkGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, genai.Text(prompt))
}

func (g *sdkGenerator) GenerateWithImage(ctx context.Context, prompt string, image genai.Blob) (string, error) {
	return g.generate(ctx, genai.Text(prompt), image)
}

func (g *sdkGenerator) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

func (g *sdkGenerator) Close() error {
	return g.client.Close()
}

// Client implements outbound.NutritionEstimator and outbound.RecipeAssistant
type Client struct {
	gen      generator
	model    string
	timeout  time.Duration
	observer Observer
	tracer   Tracer
	logger   *zap.Logger
}

var (
	_ outbound.NutritionEstimator = (*Client)(nil)
	_ outbound.RecipeAssistant    = (*Client)(nil)
)

// NewClient creates a Gemini-backed client. observer and tracer may be nil.
func NewClient(ctx context.Context, cfg Config, observer Observer, tracer Tracer, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	logger.Info("Gemini client initialized", zap.String("model", cfg.Model))
	return newClient(&sdkGenerator{client: client, model: model}, cfg, observer, tracer, logger), nil
}

func newClient(gen generator, cfg Config, observer Observer, tracer Tracer, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Client{
		gen:      gen,
		model:    model,
		timeout:  timeout,
		observer: observer,
		tracer:   tracer,
		logger:   logger.Named("gemini"),
	}
}

// EstimateNutrition asks the model for per-serving nutrition values
func (c *Client) EstimateNutrition(ctx context.Context, req outbound.NutritionEstimateRequest) (recipe.NutritionInfo, error) {
	if len(req.Ingredients) == 0 {
		return recipe.NutritionInfo{}, errors.New("gemini: recipe has no ingredients")
	}

	var info recipe.NutritionInfo
	start := time.Now()
	err := c.exchange(ctx, "estimate_nutrition",
		func(ctx context.Context) (string, error) { return c.gen.GenerateContent(ctx, buildPrompt(req)) },
		func(text string) (err error) {
			info, err = parseNutrition(text)
			return err
		},
	)
	if err != nil {
		c.logger.Warn("Nutrition estimate failed", zap.String("title", req.Title), zap.Error(err))
		return recipe.NutritionInfo{}, err
	}

	c.logger.Debug("Nutrition estimated",
		zap.String("title", req.Title),
		zap.Float64("calories", info.Calories),
		zap.Duration("duration", time.Since(start)),
	)
	return info, nil
}

// Close releases the SDK client
func (c *Client) Close() error {
	return c.gen.Close()
}

// exchange runs one model call under the client timeout and a span, then
// decodes the answer. Each call is recorded as success, error or
// invalid_response.
func (c *Client) exchange(
	ctx context.Context,
	operation string,
	call func(context.Context) (string, error),
	decode func(string) error,
) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.StartAISpan(ctx, providerName, c.model, operation)
		defer span.End()
	}

	start := time.Now()
	text, err := call(ctx)
	if err != nil {
		c.record("error", start)
		return err
	}
	if err := decode(text); err != nil {
		c.record("invalid_response", start)
		return err
	}
	c.record("success", start)
	return nil
}

func (c *Client) record(status string, start time.Time) {
	if c.observer != nil {
		c.observer.AIRequest(providerName, c.model, status, time.Since(start))
	}
}

// decodeObject unmarshals the first JSON object in text, tolerating markdown
// fences and prose around it
func decodeObject(text string, v interface{}) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return errors.New("gemini: no JSON object in response")
	}
	return json.Unmarshal([]byte(text[start:end+1]), v)
}

func buildPrompt(req outbound.NutritionEstimateRequest) string {
	var sb strings.Builder
	sb.WriteString("Estimate the nutrition of ONE serving of the following recipe.\n")
	fmt.Fprintf(&sb, "Recipe: %s\n", req.Title)
	fmt.Fprintf(&sb, "The ingredient quantities below make %d servings.\n", req.Servings)
	sb.WriteString("Ingredients:\n")
	for _, ing := range req.Ingredients {
		fmt.Fprintf(&sb, "- %g %s %s\n", ing.Quantity, ing.Unit, ing.Name)
	}
	sb.WriteString(`Respond with a single JSON object and nothing else, using numbers only:
{"calories": kcal, "protein": g, "carbs": g, "fat": g, "fiber": g, "sugar": g, "sodium": mg}`)
	return sb.String()
}

type nutritionPayload struct {
	Calories *float64 `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    float64  `json:"fiber"`
	Sugar    float64  `json:"sugar"`
	Sodium   float64  `json:"sodium"`
}

// parseNutrition reads the model's nutrition answer
func parseNutrition(text string) (recipe.NutritionInfo, error) {
	var p nutritionPayload
	if err := decodeObject(text, &p); err != nil {
		return recipe.NutritionInfo{}, fmt.Errorf("gemini: decode nutrition: %w", err)
	}
	if p.Calories == nil {
		return recipe.NutritionInfo{}, fmt.Errorf("gemini: response has no calories")
	}

	info := recipe.NutritionInfo{
		Calories: *p.Calories,
		Protein:  p.Protein,
		Carbs:    p.Carbs,
		Fat:      p.Fat,
		Fiber:    p.Fiber,
		Sugar:    p.Sugar,
		Sodium:   p.Sodium,
	}
	for _, v := range []float64{info.Calories, info.Protein, info.Carbs, info.Fat, info.Fiber, info.Sugar, info.Sodium} {
		if v < 0 {
			return recipe.NutritionInfo{}, fmt.Errorf("gemini: negative nutrition value %g", v)
		}
	}
	return info, nil
}
