// Package cognitive computes the presentation preferences applied to the
// interface: stored explicit choices, needs-derived defaults, gentle
// reminders and the derived layout tokens.
package cognitive

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("invalid preferences")

type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityMedium   Complexity = "medium"
	ComplexityDetailed Complexity = "detailed"
)

type DetailMode string

const (
	DetailSummary  DetailMode = "summary"
	DetailDetailed DetailMode = "detailed"
)

type Contrast string

const (
	ContrastNormal Contrast = "normal"
	ContrastHigh   Contrast = "high"
)

type Navigation string

const (
	NavigationSidebar Navigation = "sidebar"
	NavigationBottom  Navigation = "bottom"
)

// Numeric bounds.
const (
	MinFontSize     = 0.8
	MaxFontSize     = 1.5
	MinLineSpacing  = 1.2
	MaxLineSpacing  = 2.0
	MinSpacing      = 0.8
	MaxSpacing      = 1.5
	MinAlertMinutes = 1
	MaxAlertMinutes = 120
)

// Preferences is the full canonical preference record. Stored documents are
// always complete.
type Preferences struct {
	ComplexityLevel        Complexity `json:"complexityLevel" validate:"oneof=simple medium detailed"`
	FocusMode              bool       `json:"focusMode"`
	DetailMode             DetailMode `json:"detailMode" validate:"oneof=summary detailed"`
	FontSizeMultiplier     float64    `json:"fontSizeMultiplier" validate:"gte=0.8,lte=1.5"`
	LineSpacing            float64    `json:"lineSpacing" validate:"gte=1.2,lte=2"`
	SpacingMultiplier      float64    `json:"spacingMultiplier" validate:"gte=0.8,lte=1.5"`
	ContrastLevel          Contrast   `json:"contrastLevel" validate:"oneof=normal high"`
	AnimationsEnabled      bool       `json:"animationsEnabled"`
	NavigationStyle        Navigation `json:"navigationStyle" validate:"oneof=sidebar bottom"`
	CognitiveAlertsEnabled bool       `json:"cognitiveAlertsEnabled"`
	AlertThresholdMinutes  int        `json:"alertThresholdMinutes" validate:"gte=1,lte=120"`
}

// Defaults is the preference set used when nothing else applies.
func Defaults() Preferences {
	return Preferences{
		ComplexityLevel:        ComplexityMedium,
		DetailMode:             DetailSummary,
		FontSizeMultiplier:     1.0,
		LineSpacing:            1.5,
		SpacingMultiplier:      1.0,
		ContrastLevel:          ContrastNormal,
		AnimationsEnabled:      true,
		NavigationStyle:        NavigationSidebar,
		CognitiveAlertsEnabled: true,
		AlertThresholdMinutes:  5,
	}
}

var validate = validator.New()

// Validate rejects out-of-range or unknown values.
func (p Preferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Param() != "" {
				return fmt.Errorf("%w: %s must satisfy %s=%s", ErrInvalid, fe.Field(), fe.Tag(), fe.Param())
			}
			return fmt.Errorf("%w: %s failed %s", ErrInvalid, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Normalize clamps numeric fields into range and replaces unknown enum values
// and non-finite numbers with the defaults.
func (p Preferences) Normalize() Preferences {
	d := Defaults()
	if !slices.Contains([]Complexity{ComplexitySimple, ComplexityMedium, ComplexityDetailed}, p.ComplexityLevel) {
		p.ComplexityLevel = d.ComplexityLevel
	}
	if p.DetailMode != DetailSummary && p.DetailMode != DetailDetailed {
		p.DetailMode = d.DetailMode
	}
	if p.ContrastLevel != ContrastNormal && p.ContrastLevel != ContrastHigh {
		p.ContrastLevel = d.ContrastLevel
	}
	if p.NavigationStyle != NavigationSidebar && p.NavigationStyle != NavigationBottom {
		p.NavigationStyle = d.NavigationStyle
	}
	p.FontSizeMultiplier = clamp(p.FontSizeMultiplier, MinFontSize, MaxFontSize, d.FontSizeMultiplier)
	p.LineSpacing = clamp(p.LineSpacing, MinLineSpacing, MaxLineSpacing, d.LineSpacing)
	p.SpacingMultiplier = clamp(p.SpacingMultiplier, MinSpacing, MaxSpacing, d.SpacingMultiplier)
	p.AlertThresholdMinutes = max(MinAlertMinutes, min(p.AlertThresholdMinutes, MaxAlertMinutes))
	return p
}

func clamp(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return math.Max(lo, math.Min(v, hi))
}

// Patch is an explicit partial change. Nil fields keep the base value.
type Patch struct {
	ComplexityLevel        *Complexity
	FocusMode              *bool
	DetailMode             *DetailMode
	FontSizeMultiplier     *float64
	LineSpacing            *float64
	SpacingMultiplier      *float64
	ContrastLevel          *Contrast
	AnimationsEnabled      *bool
	NavigationStyle        *Navigation
	CognitiveAlertsEnabled *bool
	AlertThresholdMinutes  *int
}

// Apply returns base with every non-nil field of p set.
func (p Patch) Apply(base Preferences) Preferences {
	set(&base.ComplexityLevel, p.ComplexityLevel)
	set(&base.FocusMode, p.FocusMode)
	set(&base.DetailMode, p.DetailMode)
	set(&base.FontSizeMultiplier, p.FontSizeMultiplier)
	set(&base.LineSpacing, p.LineSpacing)
	set(&base.SpacingMultiplier, p.SpacingMultiplier)
	set(&base.ContrastLevel, p.ContrastLevel)
	set(&base.AnimationsEnabled, p.AnimationsEnabled)
	set(&base.NavigationStyle, p.NavigationStyle)
	set(&base.CognitiveAlertsEnabled, p.CognitiveAlertsEnabled)
	set(&base.AlertThresholdMinutes, p.AlertThresholdMinutes)
	return base
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T { return &v }
