package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/ports/inbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

// multipart framing on top of the image itself
const uploadOverhead = 1 << 20

// AIHandlers serves the AI-assisted cooking endpoints
type AIHandlers struct {
	service inbound.AssistantService
	logger  *zap.Logger
}

// NewAIHandlers creates AI handlers
func NewAIHandlers(service inbound.AssistantService, logger *zap.Logger) *AIHandlers {
	return &AIHandlers{service: service, logger: logger.Named("ai-handlers")}
}

// GenerateRecipesRequest is the body of POST /ai/recipes/generate
type GenerateRecipesRequest struct {
	Ingredients []string                       `json:"ingredients" binding:"max=50,dive,max=100"`
	UsePantry   bool                           `json:"use_pantry"`
	Preferences inbound.RecipePreferencesInput `json:"preferences"`
	Count       int                            `json:"count" binding:"gte=0,lte=5"`
	Save        bool                           `json:"save"`
}

// AnalyzeImageRequest is the JSON form of POST /ai/image/analyze
type AnalyzeImageRequest struct {
	ImageBase64   string  `json:"image_base64" binding:"required"`
	MIMEType      string  `json:"mime_type"`
	AddToPantry   bool    `json:"add_to_pantry"`
	MinConfidence float64 `json:"min_confidence" binding:"gte=0,lte=1"`
}

// GenerateRecipes handles POST /ai/recipes/generate
func (h *AIHandlers) GenerateRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req GenerateRecipesRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.GenerateRecipes(c.Request.Context(), inbound.GenerateRecipesCommand{
		UserID:      userID,
		Ingredients: req.Ingredients,
		UsePantry:   req.UsePantry,
		Preferences: req.Preferences,
		Count:       req.Count,
		Save:        req.Save,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusOK
	if len(result.Saved) > 0 {
		status = http.StatusCreated
	}
	respond(c, status, result, "")
}

// SuggestRecipes handles GET /ai/recipes/suggest?q=
func (h *AIHandlers) SuggestRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	titles, err := h.service.SuggestRecipes(c.Request.Context(), userID, c.Query("q"), n)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, titles, "")
}

// AnalyzeImage handles POST /ai/image/analyze. It accepts a multipart upload
// in the "image" field or a JSON body with a base64 image.
func (h *AIHandlers) AnalyzeImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, inbound.MaxImageBytes*4/3+uploadOverhead)

	var (
		cmd inbound.AnalyzeImageCommand
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		cmd, err = imageFromForm(c)
	} else {
		var req AnalyzeImageRequest
		if !bindJSON(c, &req) {
			return
		}
		cmd, err = imageFromJSON(req)
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	cmd.UserID = userID

	result, err := h.service.AnalyzeImage(c.Request.Context(), cmd)
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusOK
	if len(result.Added) > 0 {
		status = http.StatusCreated
	}
	respond(c, status, result, "")
}

func imageFromForm(c *gin.Context) (inbound.AnalyzeImageCommand, error) {
	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return inbound.AnalyzeImageCommand{}, apperrors.NewValidationError("image exceeds 8 MiB")
		}
		return inbound.AnalyzeImageCommand{}, apperrors.NewValidationError("image file is required").WithCause(err)
	}
	data, err := readUpload(header)
	if err != nil {
		return inbound.AnalyzeImageCommand{}, apperrors.NewValidationError("image could not be read").WithCause(err)
	}

	cmd := inbound.AnalyzeImageCommand{
		Image:    data,
		MIMEType: header.Header.Get("Content-Type"),
	}
	if cmd.MIMEType == "" || cmd.MIMEType == "application/octet-stream" {
		cmd.MIMEType = http.DetectContentType(data)
	}
	if raw := c.PostForm("add_to_pantry"); raw != "" {
		if cmd.AddToPantry, err = strconv.ParseBool(raw); err != nil {
			return inbound.AnalyzeImageCommand{}, apperrors.NewValidationError("add_to_pantry must be a boolean")
		}
	}
	if raw := c.PostForm("min_confidence"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			return inbound.AnalyzeImageCommand{}, apperrors.NewValidationError("min_confidence must be between 0 and 1")
		}
		cmd.MinConfidence = v
	}
	return cmd, nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, inbound.MaxImageBytes+1))
}

func imageFromJSON(req AnalyzeImageRequest) (inbound.AnalyzeImageCommand, error) {
	raw := req.ImageBase64
	mimeType := req.MIMEType
	// data URLs carry their own media type
	if rest, ok := strings.CutPrefix(raw, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found {
			return inbound.AnalyzeImageCommand{}, apperrors.NewValidationError("image_base64 is not a valid data URL")
		}
		if mimeType == "" {
			mimeType, _, _ = strings.Cut(meta, ";")
		}
		raw = payload
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return inbound.AnalyzeImageCommand{}, apperrors.NewValidationError("image_base64 must be base64").WithCause(err)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return inbound.AnalyzeImageCommand{
		Image:         data,
		MIMEType:      mimeType,
		AddToPantry:   req.AddToPantry,
		MinConfidence: req.MinConfidence,
	}, nil
}
