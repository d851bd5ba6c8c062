package cognitive

import "math"

// Effects are layout tokens derived from applied preferences. Paddings are in
// rem and scale with the spacing multiplier.
type Effects struct {
	FontScale  float64
	LineHeight float64
	Space      float64

	CardPadding        float64
	CardPaddingWide    float64
	InteractivePadding float64
	InputPadY          float64
	InputPadX          float64
	ButtonPadY         float64
	ButtonPadXPrimary  float64
	ButtonPadXGhost    float64

	HighContrast bool
	Animations   bool
	Focus        bool
	Complexity   Complexity
	Detail       DetailMode
}

// EffectsOf derives the tokens for prefs. Non-finite numbers fall back to
// neutral values.
func EffectsOf(prefs Preferences) Effects {
	font := finiteOr(prefs.FontSizeMultiplier, 1)
	line := finiteOr(prefs.LineSpacing, 1.5)
	space := finiteOr(prefs.SpacingMultiplier, 1)

	contrast := prefs.ContrastLevel
	if contrast == "" {
		contrast = ContrastNormal
	}
	return Effects{
		FontScale:          font,
		LineHeight:         line,
		Space:              space,
		CardPadding:        1.5 * space,
		CardPaddingWide:    2.0 * space,
		InteractivePadding: 1.5 * space,
		InputPadY:          0.75 * space,
		InputPadX:          1.0 * space,
		ButtonPadY:         0.75 * space,
		ButtonPadXPrimary:  2.0 * space,
		ButtonPadXGhost:    1.5 * space,
		HighContrast:       contrast == ContrastHigh,
		Animations:         prefs.AnimationsEnabled,
		Focus:              prefs.FocusMode,
		Complexity:         prefs.ComplexityLevel,
		Detail:             prefs.DetailMode,
	}
}

// Cells converts a rem token to terminal cells, at least 0.
func Cells(rem float64) int {
	return max(0, int(math.Round(rem)))
}

// BlankLines is the number of empty lines to put between text blocks for the
// line height. The default 1.5 maps to none.
func (e Effects) BlankLines() int {
	return max(0, int(math.Floor((e.LineHeight-1.5)*2+0.5)))
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
