package pipeline

import (
	"slices"
	"testing"

	"github.com/matzehuels/treemap/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"html", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"treemap", false},
		{"hierarchy", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateUnloaded, StateLoaded, true},
		{StateUnloaded, StateFailed, true},
		{StateUnloaded, StateRendered, false},
		{StateLoaded, StateRendered, true},
		{StateLoaded, StateFailed, true},
		{StateLoaded, StateUnloaded, false},
		{StateRendered, StateLoaded, false},
		{StateRendered, StateFailed, false},
		{StateFailed, StateLoaded, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanAdvance(tt.to); got != tt.want {
			t.Errorf("%s.CanAdvance(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	if State(42).String() != "unknown" {
		t.Error("unexpected name for invalid state")
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{}, ""},
		{"bad viz", Options{VizType: "tower"}, errors.ErrCodeInvalidVizType},
		{"negative width", Options{Width: -5}, errors.ErrCodeInvalidCanvas},
		{"negative padding", Options{PaddingOuter: -1}, errors.ErrCodeInvalidCanvas},
		{"bad selector", Options{Select: "children"}, errors.ErrCodeInvalidSelector},
		{"good selector", Options{Select: "$.children[0]"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{VizType: VizTypeHierarchy, Formats: []string{"html"}}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("html hierarchy should fail")
	}

	opts = Options{LegendRows: -1}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("negative legend rows should fail")
	}
}

func TestOptionsIsTreemap(t *testing.T) {
	opts := Options{}
	if !opts.IsTreemap() {
		t.Error("Empty VizType should be treemap")
	}
	if opts.IsHierarchy() {
		t.Error("Empty VizType should not be hierarchy")
	}

	opts.VizType = "hierarchy"
	if opts.IsTreemap() {
		t.Error("hierarchy VizType should not be treemap")
	}
	if !opts.IsHierarchy() {
		t.Error("hierarchy VizType should be hierarchy")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalWidth := opts.Width
	originalVizType := opts.VizType
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
	if opts.VizType != originalVizType {
		t.Error("VizType changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestSetRenderDefaultsDropsRepeatedFormats(t *testing.T) {
	opts := Options{Formats: []string{"svg", "json", "svg", "json", "png"}}
	opts.SetRenderDefaults()

	want := []string{"svg", "json", "png"}
	if !slices.Equal(opts.Formats, want) {
		t.Errorf("Formats = %v, want %v", opts.Formats, want)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if len(opts.Palette) != 18 {
		t.Errorf("Palette should have 18 colors, got %d", len(opts.Palette))
	}
	if opts.LegendRows != DefaultLegendRows {
		t.Errorf("LegendRows should be %d, got %d", DefaultLegendRows, opts.LegendRows)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale should be %v, got %v", DefaultPNGScale, opts.PNGScale)
	}
}
