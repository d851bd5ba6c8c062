package cognitive

import "github.com/sadopc/mindease/internal/profile"

// NeedsOverrides maps self-declared needs onto preference values.
func NeedsOverrides(n profile.Needs) Patch {
	d := Defaults()
	p := Patch{
		DetailMode:             Ptr(DetailDetailed),
		ComplexityLevel:        Ptr(d.ComplexityLevel),
		AnimationsEnabled:      Ptr(d.AnimationsEnabled),
		SpacingMultiplier:      Ptr(d.SpacingMultiplier),
		LineSpacing:            Ptr(d.LineSpacing),
		ContrastLevel:          Ptr(d.ContrastLevel),
		CognitiveAlertsEnabled: Ptr(false),
		AlertThresholdMinutes:  Ptr(d.AlertThresholdMinutes),
	}
	if n.ShortTexts {
		p.DetailMode = Ptr(DetailSummary)
		p.ComplexityLevel = Ptr(ComplexitySimple)
	}
	if n.ReduceStimuli {
		p.AnimationsEnabled = Ptr(false)
		p.SpacingMultiplier = Ptr(1.1)
		p.LineSpacing = Ptr(1.6)
	}
	if n.HighContrastPreferred {
		p.ContrastLevel = Ptr(ContrastHigh)
	}
	if n.GentleReminders {
		p.CognitiveAlertsEnabled = Ptr(true)
		p.AlertThresholdMinutes = Ptr(30)
	}
	return p
}

// Effective returns the preferences to apply. Explicitly stored preferences
// always win; needs overrides only fill in when nothing was ever stored.
func Effective(stored *Preferences, needs profile.Needs) Preferences {
	if stored != nil {
		return stored.Normalize()
	}
	return NeedsOverrides(needs).Apply(Defaults())
}
