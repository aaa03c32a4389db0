package gemini

import (
	"regexp"

	apperrors "budgetbuddy/internal/errors"
)

var errorClasses = []struct {
	patterns []*regexp.Regexp
	sentinel *apperrors.AppError
}{
	{[]*regexp.Regexp{regexp.MustCompile(`(?i)quota`), regexp.MustCompile(`(?i)billing`)}, apperrors.ErrAIQuotaExceeded},
	{[]*regexp.Regexp{regexp.MustCompile(`(?i)api.?key`), regexp.MustCompile(`(?i)authentication`)}, apperrors.ErrAIInvalidKey},
	{[]*regexp.Regexp{regexp.MustCompile(`(?i)safety`)}, apperrors.ErrAIContentBlocked},
	{[]*regexp.Regexp{regexp.MustCompile(`(?i)unsupported`)}, apperrors.ErrAIUnsupportedImage},
}

// Classify maps a raw model error to one of the user-facing AI errors. The
// first matching class wins; anything unrecognised is a generic failure.
func Classify(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, class := range errorClasses {
		for _, re := range class.patterns {
			if re.MatchString(msg) {
				return apperrors.Wrap(class.sentinel, err)
			}
		}
	}
	return apperrors.Wrap(apperrors.ErrAIAnalysisFailed, err)
}
