package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// pngBytes is enough of a PNG for content sniffing.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func newTestClient(server *httptest.Server) *Client {
	c := NewClient(server.Client(), server.URL, "test-key", "gemini-1.5-flash")
	return c
}

func candidateResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": "STOP",
		}},
	}
}

func TestClient_AnalyzeImage_Success(t *testing.T) {
	var gotReq generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidateResponse(
			`{"amount": 12.5, "category": "Coffee", "description": "Latte", "confidence": 0.9, "reasoning": "Printed total"}`,
		))
	}))
	defer server.Close()

	receipt, err := newTestClient(server).AnalyzeImage(context.Background(), pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Amount.StringFixed(2) != "12.50" {
		t.Errorf("expected amount 12.50, got %s", receipt.Amount)
	}
	if receipt.Category != "Coffee" || receipt.Confidence != 0.9 {
		t.Errorf("unexpected receipt: %+v", receipt)
	}

	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 2 {
		t.Fatalf("unexpected request contents: %+v", gotReq.Contents)
	}
	img := gotReq.Contents[0].Parts[1].InlineData
	if img == nil || img.MimeType != "image/png" {
		t.Errorf("expected image/png inline data, got %+v", img)
	}
	if gotReq.GenerationConfig["responseMimeType"] != "application/json" {
		t.Errorf("expected JSON response mime type, got %v", gotReq.GenerationConfig["responseMimeType"])
	}
}

func TestClient_AnalyzeImage_EmptyCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidateResponse(
			`{"amount": 7, "category": "", "description": "Unreadable", "confidence": 0.2, "reasoning": "Blurry"}`,
		))
	}))
	defer server.Close()

	receipt, err := newTestClient(server).AnalyzeImage(context.Background(), pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Category != "" || receipt.Description != "Unreadable" {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
}

func TestClient_AnalyzeImage_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     any
		wantCode string
	}{
		{
			name:     "quota",
			status:   http.StatusTooManyRequests,
			body:     map[string]any{"error": map[string]any{"code": 429, "message": "You exceeded your current quota", "status": "RESOURCE_EXHAUSTED"}},
			wantCode: "AI_QUOTA_EXCEEDED",
		},
		{
			name:     "bad_key",
			status:   http.StatusBadRequest,
			body:     map[string]any{"error": map[string]any{"code": 400, "message": "API key not valid. Please pass a valid API key.", "status": "INVALID_ARGUMENT"}},
			wantCode: "AI_INVALID_KEY",
		},
		{
			name:     "prompt_blocked",
			status:   http.StatusOK,
			body:     map[string]any{"promptFeedback": map[string]any{"blockReason": "OTHER"}},
			wantCode: "AI_CONTENT_BLOCKED",
		},
		{
			name:   "finish_reason_safety",
			status: http.StatusOK,
			body: map[string]any{"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{}}, "finishReason": "SAFETY",
			}}},
			wantCode: "AI_CONTENT_BLOCKED",
		},
		{
			name:     "confidence_out_of_range",
			status:   http.StatusOK,
			body:     candidateResponse(`{"amount": 3, "category": "Coffee", "description": "", "confidence": 1.5, "reasoning": ""}`),
			wantCode: "AI_ANALYSIS_FAILED",
		},
		{
			name:     "not_json",
			status:   http.StatusOK,
			body:     candidateResponse("I think it costs about five dollars"),
			wantCode: "AI_ANALYSIS_FAILED",
		},
		{
			name:     "server_error",
			status:   http.StatusInternalServerError,
			body:     "oops",
			wantCode: "AI_ANALYSIS_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			_, err := newTestClient(server).AnalyzeImage(context.Background(), pngBytes)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := Classify(err); got.Code != tt.wantCode {
				t.Errorf("expected %s, got %s (raw: %v)", tt.wantCode, got.Code, err)
			}
		})
	}
}

func TestClient_AnalyzeImage_RejectsNonImage(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := newTestClient(server).AnalyzeImage(context.Background(), []byte("plain text, not a photo"))
	if err == nil {
		t.Fatal("expected error for non-image payload")
	}
	if Classify(err).Code != "AI_UNSUPPORTED_IMAGE" {
		t.Errorf("expected AI_UNSUPPORTED_IMAGE, got %s", Classify(err).Code)
	}
	if called {
		t.Error("expected no request to be sent for a non-image payload")
	}
}

func TestDecodeImage(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngBytes)

	t.Run("plain_base64", func(t *testing.T) {
		data, err := DecodeImage(encoded)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(data) != len(pngBytes) {
			t.Errorf("expected %d bytes, got %d", len(pngBytes), len(data))
		}
	})

	t.Run("data_url_prefix", func(t *testing.T) {
		data, err := DecodeImage("data:image/png;base64," + encoded)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mt, _ := DetectImageType(data); mt != "image/png" {
			t.Errorf("expected image/png, got %s", mt)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := DecodeImage("!!not base64!!"); err == nil {
			t.Error("expected error for invalid base64")
		}
		if _, err := DecodeImage(""); err == nil {
			t.Error("expected error for empty payload")
		}
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"Quota exceeded for project", "AI_QUOTA_EXCEEDED"},
		{"BILLING account disabled", "AI_QUOTA_EXCEEDED"},
		{"quota exceeded, check api key", "AI_QUOTA_EXCEEDED"},
		{"API_KEY_INVALID", "AI_INVALID_KEY"},
		{"invalid apikey", "AI_INVALID_KEY"},
		{"authentication failed", "AI_INVALID_KEY"},
		{"blocked by Safety settings", "AI_CONTENT_BLOCKED"},
		{"unsupported mime type", "AI_UNSUPPORTED_IMAGE"},
		{"connection reset by peer", "AI_ANALYSIS_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := Classify(errors.New(tt.msg))
			if got.Code != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Code)
			}
			if !strings.HasSuffix(got.Message, ".") {
				t.Errorf("expected a user-facing sentence, got %q", got.Message)
			}
		})
	}

	if Classify(nil) != nil {
		t.Error("expected nil for nil error")
	}
}
