// Package gemini extracts expense details from receipt and product photos
// using the Google Gemini generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	customvalidator "budgetbuddy/internal/validator"
)

const prompt = `Analyze this image and extract expense information. Look for:
1. The total amount/price (look for currency symbols, numbers that represent costs)
2. What category this expense would fall under
3. A brief description of what was purchased
4. Your confidence in the analysis (0.0 to 1.0)

If this is a receipt, focus on the total amount. If it's a product photo, estimate a reasonable price based on what you see. Be practical and realistic with your suggestions.

Return your confidence as a decimal between 0 and 1 (e.g., 0.85 for 85% confident).`

var dataURLPrefix = regexp.MustCompile(`^data:image/[a-z]+;base64,`)

// Receipt is the structured result extracted from a photo.
type Receipt struct {
	Amount      decimal.Decimal `json:"amount" validate:"gte=0" swaggertype:"number" example:"12.5"`
	Category    string          `json:"category" example:"Coffee"`
	Description string          `json:"description" example:"Flat white and croissant"`
	Confidence  float64         `json:"confidence" validate:"gte=0,lte=1" example:"0.85"`
	Reasoning   string          `json:"reasoning" example:"Total printed at the bottom of the receipt"`
}

// responseSchema mirrors Receipt in the OpenAPI subset Gemini accepts.
var responseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"amount": map[string]any{"type": "NUMBER", "description": "The total amount or price found in the image"},
		"category": map[string]any{
			"type":        "STRING",
			"description": "The most appropriate expense category (e.g., 'Food & Dining', 'Transportation', 'Shopping', 'Entertainment', 'Healthcare', 'Utilities', 'Groceries', 'Gas', 'Coffee', 'Restaurants')",
		},
		"description": map[string]any{"type": "STRING", "description": "A brief description of what was purchased or the expense item"},
		"confidence":  map[string]any{"type": "NUMBER", "description": "Confidence level of the analysis (0-1)"},
		"reasoning":   map[string]any{"type": "STRING", "description": "Brief explanation of how the analysis was determined"},
	},
	"required": []string{"amount", "category", "description", "confidence", "reasoning"},
}

// Client calls the Gemini API.
type Client struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
	model      string
	validate   *validator.Validate
}

// NewClient creates a Client. The http.Client's timeout bounds each call.
func NewClient(httpClient *http.Client, baseURL, apiKey, model string) *Client {
	v := validator.New()
	customvalidator.Apply(v)
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		validate:   v,
	}
}

// DecodeImage strips an optional data URL prefix and decodes the base64
// payload.
func DecodeImage(encoded string) ([]byte, error) {
	raw := dataURLPrefix.ReplaceAllString(strings.TrimSpace(encoded), "")
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("decoding image: empty payload")
	}
	return data, nil
}

// DetectImageType sniffs the MIME type of data and rejects non-images.
func DetectImageType(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("unsupported image format %s", mt.String())
	}
	return mt.String(), nil
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content      `json:"contents"`
	GenerationConfig map[string]any `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// AnalyzeImage sends the image to the model and returns the validated
// extraction. Errors carry the upstream message so Classify can map them.
func (c *Client) AnalyzeImage(ctx context.Context, data []byte) (*Receipt, error) {
	mimeType, err := DetectImageType(data)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}},
			},
		}},
		GenerationConfig: map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   responseSchema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}

	if gen.PromptFeedback != nil && gen.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("gemini blocked the prompt: %s (safety)", gen.PromptFeedback.BlockReason)
	}
	if len(gen.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	cand := gen.Candidates[0]
	if cand.FinishReason == "SAFETY" {
		return nil, fmt.Errorf("gemini stopped generation for safety reasons")
	}

	var text strings.Builder
	for _, p := range cand.Content.Parts {
		text.WriteString(p.Text)
	}

	var receipt Receipt
	if err := json.Unmarshal([]byte(text.String()), &receipt); err != nil {
		return nil, fmt.Errorf("gemini response did not match schema: %w", err)
	}
	if err := c.validate.Struct(receipt); err != nil {
		return nil, fmt.Errorf("gemini response did not match schema: %w", err)
	}
	return &receipt, nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("gemini: unexpected status %d: %s: %s", resp.StatusCode, apiErr.Error.Status, apiErr.Error.Message)
	}
	return fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
}
