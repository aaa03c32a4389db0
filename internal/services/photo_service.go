package services

import (
	"context"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/gemini"
	"budgetbuddy/internal/logger"
)

// ReceiptAnalyzer extracts receipt fields from an image. *gemini.Client
// implements it.
type ReceiptAnalyzer interface {
	AnalyzeImage(ctx context.Context, image []byte) (*gemini.Receipt, error)
}

// photoService gates and classifies receipt analysis.
type photoService struct {
	enabled  bool
	analyzer ReceiptAnalyzer
}

// NewPhotoService creates a new PhotoServicer. When enabled is false every
// analysis fails with AI_NOT_CONFIGURED and analyzer may be nil.
func NewPhotoService(enabled bool, analyzer ReceiptAnalyzer) PhotoServicer {
	return &photoService{enabled: enabled && analyzer != nil, analyzer: analyzer}
}

// Enabled reports whether photo analysis is available.
func (s *photoService) Enabled() bool {
	return s.enabled
}

// AnalyzePhoto sends the image to the model once. Model failures are mapped
// to the AI error codes.
func (s *photoService) AnalyzePhoto(ctx context.Context, image []byte) (*gemini.Receipt, error) {
	if !s.enabled {
		return nil, apperrors.ErrAINotConfigured
	}
	if len(image) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "image is required")
	}

	receipt, err := s.analyzer.AnalyzeImage(ctx, image)
	if err != nil {
		appErr := gemini.Classify(err)
		logger.Get().Warnw("receipt analysis failed",
			"code", appErr.Code,
			"error", err,
		)
		return nil, appErr
	}
	return receipt, nil
}
