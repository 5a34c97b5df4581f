package gemini

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/ports/outbound"
)

const (
	defaultRecipeCount = 3
	maxRecipeCount     = 5
	maxSuggestions     = 10
)

// GenerateRecipes drafts recipes around the given ingredients. Drafts the
// model returns without a title or usable ingredients are dropped.
func (c *Client) GenerateRecipes(ctx context.Context, req outbound.RecipeGenerationRequest) ([]outbound.GeneratedRecipe, error) {
	if len(req.Ingredients) == 0 {
		return nil, errors.New("gemini: no ingredients to cook with")
	}
	count := req.Count
	if count <= 0 {
		count = defaultRecipeCount
	}
	if count > maxRecipeCount {
		count = maxRecipeCount
	}

	var recipes []outbound.GeneratedRecipe
	start := time.Now()
	err := c.exchange(ctx, "generate_recipes",
		func(ctx context.Context) (string, error) {
			return c.gen.GenerateContent(ctx, buildRecipePrompt(req, count))
		},
		func(text string) (err error) {
			recipes, err = parseRecipes(text)
			return err
		},
	)
	if err != nil {
		c.logger.Warn("Recipe generation failed", zap.Int("ingredients", len(req.Ingredients)), zap.Error(err))
		return nil, err
	}

	if len(recipes) > count {
		recipes = recipes[:count]
	}
	c.logger.Debug("Recipes generated",
		zap.Int("recipes", len(recipes)),
		zap.Duration("duration", time.Since(start)),
	)
	return recipes, nil
}

// SuggestRecipes proposes up to limit recipe titles for query
func (c *Client) SuggestRecipes(ctx context.Context, query string, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("gemini: empty query")
	}
	if limit <= 0 || limit > maxSuggestions {
		limit = 5
	}

	var titles []string
	err := c.exchange(ctx, "suggest_recipes",
		func(ctx context.Context) (string, error) {
			return c.gen.GenerateContent(ctx, buildSuggestionPrompt(query, limit))
		},
		func(text string) (err error) {
			titles, err = parseSuggestions(text, limit)
			return err
		},
	)
	if err != nil {
		c.logger.Warn("Recipe suggestions failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return titles, nil
}

// AnalyzeImage lists the food items the model recognizes in a photo
func (c *Client) AnalyzeImage(ctx context.Context, req outbound.ImageAnalysisRequest) (outbound.ImageAnalysis, error) {
	if len(req.Image) == 0 {
		return outbound.ImageAnalysis{}, errors.New("gemini: empty image")
	}
	format, ok := strings.CutPrefix(strings.ToLower(req.MIMEType), "image/")
	if !ok || format == "" {
		return outbound.ImageAnalysis{}, fmt.Errorf("gemini: unsupported media type %q", req.MIMEType)
	}

	var analysis outbound.ImageAnalysis
	err := c.exchange(ctx, "analyze_image",
		func(ctx context.Context) (string, error) {
			return c.gen.GenerateWithImage(ctx, imagePrompt, genai.ImageData(format, req.Image))
		},
		func(text string) (err error) {
			analysis, err = parseImageAnalysis(text)
			return err
		},
	)
	if err != nil {
		c.logger.Warn("Image analysis failed", zap.Int("bytes", len(req.Image)), zap.Error(err))
		return outbound.ImageAnalysis{}, err
	}

	c.logger.Debug("Image analyzed", zap.Int("items", len(analysis.Items)))
	return analysis, nil
}

func buildRecipePrompt(req outbound.RecipeGenerationRequest, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a professional cook. Create %d different recipes that use these ingredients:\n", count)
	sb.WriteString(strings.Join(req.Ingredients, ", "))
	sb.WriteString("\n")

	p := req.Preferences
	var prefs []string
	if len(p.Dietary) > 0 {
		prefs = append(prefs, "Diet: "+strings.Join(p.Dietary, ", "))
	}
	if p.Cuisine != "" {
		prefs = append(prefs, "Cuisine: "+p.Cuisine)
	}
	if p.MaxMinutes > 0 {
		prefs = append(prefs, fmt.Sprintf("Total time at most %d minutes", p.MaxMinutes))
	}
	if p.Difficulty != "" {
		prefs = append(prefs, "Difficulty: "+string(p.Difficulty))
	}
	if p.Servings > 0 {
		prefs = append(prefs, fmt.Sprintf("Servings: %d", p.Servings))
	}
	if len(prefs) > 0 {
		sb.WriteString("Preferences:\n")
		for _, pref := range prefs {
			fmt.Fprintf(&sb, "- %s\n", pref)
		}
	}

	sb.WriteString(`Respond with a single JSON object and nothing else:
{"recipes": [{"title": "", "description": "", "ingredients": [{"name": "", "quantity": 100, "unit": "g"}],
"instructions": ["step"], "prep_time": 15, "cook_time": 30, "difficulty": "easy|medium|hard",
"servings": 4, "calories": 350}]}
calories is per serving in kcal, times are in minutes.`)
	return sb.String()
}

func buildSuggestionPrompt(query string, limit int) string {
	return fmt.Sprintf(`You are a cooking assistant. Suggest %d recipe titles relevant to the search %q.
Respond with a single JSON object and nothing else: {"titles": ["..."]}`, limit, query)
}

const imagePrompt = `Identify every food item and cooking ingredient visible in this photo.
Estimate the quantity where you can. Respond with a single JSON object and nothing else:
{"items": [{"name": "tomato", "confidence": 0.95, "quantity": 5, "unit": "pcs",
"category": "vegetables|fruit|meat|fish|dairy|grains|spices|canned|frozen|other"}],
"suggestions": ["dish you could cook with them"]}
confidence is between 0 and 1.`

type recipesPayload struct {
	Recipes []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Ingredients []struct {
			Name     string  `json:"name"`
			Quantity float64 `json:"quantity"`
			Unit     string  `json:"unit"`
		} `json:"ingredients"`
		Instructions []string `json:"instructions"`
		PrepTime     int      `json:"prep_time"`
		CookTime     int      `json:"cook_time"`
		Difficulty   string   `json:"difficulty"`
		Servings     int      `json:"servings"`
		Calories     float64  `json:"calories"`
	} `json:"recipes"`
}

// parseRecipes keeps only drafts that could be saved as recipes
func parseRecipes(text string) ([]outbound.GeneratedRecipe, error) {
	var p recipesPayload
	if err := decodeObject(text, &p); err != nil {
		return nil, fmt.Errorf("gemini: decode recipes: %w", err)
	}

	recipes := make([]outbound.GeneratedRecipe, 0, len(p.Recipes))
	for _, r := range p.Recipes {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}

		var ingredients []recipe.Ingredient
		for _, ing := range r.Ingredients {
			name := strings.TrimSpace(ing.Name)
			if name == "" || ing.Quantity <= 0 {
				continue
			}
			ingredients = append(ingredients, recipe.Ingredient{Name: name, Quantity: ing.Quantity, Unit: strings.TrimSpace(ing.Unit)})
		}
		if len(ingredients) == 0 {
			continue
		}

		var steps []string
		for _, step := range r.Instructions {
			if step = strings.TrimSpace(step); step != "" {
				steps = append(steps, step)
			}
		}

		// unknown difficulty names are left blank
		difficulty, _ := recipe.ParseDifficulty(r.Difficulty)
		servings := r.Servings
		if servings <= 0 {
			servings = 1
		}

		recipes = append(recipes, outbound.GeneratedRecipe{
			Title:        title,
			Description:  strings.TrimSpace(r.Description),
			Ingredients:  ingredients,
			Instructions: steps,
			PrepTime:     max(r.PrepTime, 0),
			CookTime:     max(r.CookTime, 0),
			Difficulty:   difficulty,
			Servings:     servings,
			Calories:     math.Max(r.Calories, 0),
		})
	}

	if len(recipes) == 0 {
		return nil, errors.New("gemini: response has no usable recipes")
	}
	return recipes, nil
}

func parseSuggestions(text string, limit int) ([]string, error) {
	var p struct {
		Titles []string `json:"titles"`
	}
	if err := decodeObject(text, &p); err != nil {
		return nil, fmt.Errorf("gemini: decode suggestions: %w", err)
	}

	seen := make(map[string]bool, len(p.Titles))
	titles := make([]string, 0, len(p.Titles))
	for _, title := range p.Titles {
		title = strings.TrimSpace(title)
		key := strings.ToLower(title)
		if title == "" || seen[key] {
			continue
		}
		seen[key] = true
		titles = append(titles, title)
		if len(titles) == limit {
			break
		}
	}
	return titles, nil
}

func parseImageAnalysis(text string) (outbound.ImageAnalysis, error) {
	var p struct {
		Items []struct {
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
			Quantity   float64 `json:"quantity"`
			Unit       string  `json:"unit"`
			Category   string  `json:"category"`
		} `json:"items"`
		Suggestions []string `json:"suggestions"`
	}
	if err := decodeObject(text, &p); err != nil {
		return outbound.ImageAnalysis{}, fmt.Errorf("gemini: decode image analysis: %w", err)
	}

	analysis := outbound.ImageAnalysis{
		Items:       make([]outbound.DetectedItem, 0, len(p.Items)),
		Suggestions: make([]string, 0, len(p.Suggestions)),
	}
	for _, item := range p.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		analysis.Items = append(analysis.Items, outbound.DetectedItem{
			Name:       name,
			Confidence: math.Min(math.Max(item.Confidence, 0), 1),
			Quantity:   math.Max(item.Quantity, 0),
			Unit:       strings.TrimSpace(item.Unit),
			Category:   strings.ToLower(strings.TrimSpace(item.Category)),
		})
	}
	for _, s := range p.Suggestions {
		if s = strings.TrimSpace(s); s != "" {
			analysis.Suggestions = append(analysis.Suggestions, s)
		}
	}
	return analysis, nil
}
