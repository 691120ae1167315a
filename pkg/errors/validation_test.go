package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "treemap.svg", false},
		{"nested file", "out/charts/treemap.html", false},
		{"absolute file", "/tmp/treemap.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600), true},
		{"null byte", "foo\x00bar.svg", true},
		{"control char", "foo\x01bar.svg", true},
		{"newline", "foo\nbar.svg", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateCanvas(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"default", 960, 570, false},
		{"tiny", 1, 1, false},
		{"zero width", 0, 570, true},
		{"negative height", 960, -1, true},
		{"nan", math.NaN(), 570, true},
		{"inf", 960, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvas(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCanvas(%g, %g) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePadding(t *testing.T) {
	tests := []struct {
		p       float64
		wantErr bool
	}{
		{0, false},
		{1, false},
		{2.5, false},
		{-1, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}

	for _, tt := range tests {
		err := ValidatePadding("inner", tt.p)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePadding(%g) error = %v, wantErr %v", tt.p, err, tt.wantErr)
		}
	}
}

func TestValidateSelector(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty means none", "", false},
		{"root", "$", false},
		{"filter", "$.children[?(@.name == 'Wii')]", false},
		{"missing root", "children[0]", true},
		{"too long", "$" + strings.Repeat(".a", 600), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelector(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSelector(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
