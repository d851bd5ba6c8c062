package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/sadopc/mindease/internal/board"
	"github.com/sadopc/mindease/internal/cognitive"
	"github.com/sadopc/mindease/internal/profile"
)

// enumValue is a pflag.Value restricted to a fixed set of strings.
type enumValue[T ~string] struct {
	target  *T
	allowed []T
	kind    string
}

var _ pflag.Value = (*enumValue[board.Status])(nil)

func newEnum[T ~string](target *T, def T, kind string, allowed ...T) *enumValue[T] {
	*target = def
	return &enumValue[T]{target: target, allowed: allowed, kind: kind}
}

func (e *enumValue[T]) String() string { return string(*e.target) }

func (e *enumValue[T]) Set(s string) error {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(e.allowed, v) {
		return fmt.Errorf("must be one of %s", e.choices())
	}
	*e.target = v
	return nil
}

func (e *enumValue[T]) Type() string { return e.kind }

func (e *enumValue[T]) choices() string {
	parts := make([]string, len(e.allowed))
	for i, a := range e.allowed {
		parts[i] = string(a)
	}
	return strings.Join(parts, "|")
}

func statusFlag(target *board.Status, def board.Status) *enumValue[board.Status] {
	return newEnum(target, def, "status", board.Statuses...)
}

func priorityFlag(target *board.Priority, def board.Priority) *enumValue[board.Priority] {
	return newEnum(target, def, "priority", board.Priorities...)
}

func complexityFlag(target *cognitive.Complexity) *enumValue[cognitive.Complexity] {
	return newEnum(target, "", "complexity",
		cognitive.ComplexitySimple, cognitive.ComplexityMedium, cognitive.ComplexityDetailed)
}

func detailFlag(target *cognitive.DetailMode) *enumValue[cognitive.DetailMode] {
	return newEnum(target, "", "detail", cognitive.DetailSummary, cognitive.DetailDetailed)
}

func contrastFlag(target *cognitive.Contrast) *enumValue[cognitive.Contrast] {
	return newEnum(target, "", "contrast", cognitive.ContrastNormal, cognitive.ContrastHigh)
}

func navigationFlag(target *cognitive.Navigation) *enumValue[cognitive.Navigation] {
	return newEnum(target, "", "navigation", cognitive.NavigationSidebar, cognitive.NavigationBottom)
}

func navProfileFlag(target *profile.NavigationProfile) *enumValue[profile.NavigationProfile] {
	return newEnum(target, "", "navigation",
		profile.NavigationSimple, profile.NavigationGuided, profile.NavigationPower)
}

func periodFlag(target *profile.Period) *enumValue[profile.Period] {
	return newEnum(target, "", "period", profile.PeriodMorning, profile.PeriodAfternoon, profile.PeriodNight)
}
