package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type sample struct {
	Name      string          `validate:"required,notblank"`
	Color     string          `validate:"omitempty,hex_color"`
	Timeframe string          `validate:"required,timeframe"`
	Amount    decimal.Decimal `validate:"required,gt=0"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	Apply(v)
	return v
}

func TestApply(t *testing.T) {
	v := newValidate()
	valid := sample{Name: "Coffee", Color: "#6366f1", Timeframe: "weekly", Amount: decimal.RequireFromString("4.50")}

	tests := []struct {
		name    string
		mutate  func(s *sample)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *sample) {}},
		{name: "short_hex_color", mutate: func(s *sample) { s.Color = "#fff" }},
		{name: "empty_color_allowed", mutate: func(s *sample) { s.Color = "" }},
		{name: "bad_hex_color", mutate: func(s *sample) { s.Color = "red" }, wantErr: true},
		{name: "bad_timeframe", mutate: func(s *sample) { s.Timeframe = "yearly" }, wantErr: true},
		{name: "blank_name", mutate: func(s *sample) { s.Name = "   " }, wantErr: true},
		{name: "zero_amount", mutate: func(s *sample) { s.Amount = decimal.Zero }, wantErr: true},
		{name: "negative_amount", mutate: func(s *sample) { s.Amount = decimal.NewFromInt(-3) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := v.Struct(s)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
