package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/gemini"
	"budgetbuddy/internal/services"
)

// PhotoHandler handles receipt photo analysis and feature discovery.
type PhotoHandler struct {
	photoService services.PhotoServicer
	maxBytes     int64
}

// NewPhotoHandler creates a new PhotoHandler. maxBytes caps the decoded image.
func NewPhotoHandler(photoService services.PhotoServicer, maxBytes int64) *PhotoHandler {
	return &PhotoHandler{photoService: photoService, maxBytes: maxBytes}
}

// AnalyzePhotoRequest carries a base64 image, optionally as a data URL.
type AnalyzePhotoRequest struct {
	Image string `json:"image" binding:"required" example:"data:image/jpeg;base64,/9j/4AAQSkZJRg..."`
}

// FeaturesResponse lists optional features and whether they are available.
type FeaturesResponse struct {
	PhotoAnalysis bool `json:"photo_analysis"`
}

// AnalyzePhoto extracts amount, category and description from a receipt photo.
// @Summary     Analyze receipt photo
// @Description Send a base64 image as JSON or a multipart "image" file. The model suggests an amount, category and description.
// @Tags        photos
// @Accept      json
// @Accept      mpfd
// @Produce     json
// @Security    BearerAuth
// @Param       request body AnalyzePhotoRequest false "Base64 image"
// @Param       image   formData file false "Image file"
// @Success     200 {object} map[string]gemini.Receipt "Extracted receipt fields"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     413 {object} ErrorResponse "Image too large"
// @Failure     415 {object} ErrorResponse "Unsupported image"
// @Failure     422 {object} ErrorResponse "Blocked by safety filters"
// @Failure     429 {object} ErrorResponse "AI quota exceeded"
// @Failure     502 {object} ErrorResponse "AI analysis failed"
// @Failure     503 {object} ErrorResponse "AI not configured"
// @Router      /photos/analyze [post]
func (h *PhotoHandler) AnalyzePhoto(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}
	if !h.photoService.Enabled() {
		respondWithError(c, apperrors.ErrAINotConfigured)
		return
	}

	image, err := h.readImage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if h.maxBytes > 0 && int64(len(image)) > h.maxBytes {
		respondWithError(c, apperrors.ErrPayloadTooLarge)
		return
	}

	receipt, err := h.photoService.AnalyzePhoto(c.Request.Context(), image)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": receipt})
}

// readImage returns the raw image bytes from a multipart upload or a JSON
// base64 payload.
func (h *PhotoHandler) readImage(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("image")
		if err != nil {
			return nil, bodyError(err, "image file is required")
		}
		f, err := header.Open()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		defer func() { _ = f.Close() }()

		data, err := io.ReadAll(f)
		if err != nil {
			return nil, bodyError(err, "could not read image file")
		}
		return data, nil
	}

	var req AnalyzePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, bodyError(err, err.Error())
	}
	data, err := gemini.DecodeImage(req.Image)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "image must be base64 encoded")
	}
	return data, nil
}

// bodyError maps a body read failure to PAYLOAD_TOO_LARGE when the size
// limit tripped, and INVALID_INPUT otherwise.
func bodyError(err error, message string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
		return apperrors.ErrPayloadTooLarge
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, message)
}

// GetFeatures reports which optional features are enabled.
// @Summary     Get feature flags
// @Description Lets clients disable controls for features that are switched off
// @Tags        features
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} FeaturesResponse "Feature flags"
// @Router      /features [get]
func (h *PhotoHandler) GetFeatures(c *gin.Context) {
	c.JSON(http.StatusOK, FeaturesResponse{PhotoAnalysis: h.photoService.Enabled()})
}
