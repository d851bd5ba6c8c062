// Package profile holds the user profile: display name, navigation style,
// cognitive needs and focus routine.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("invalid profile")

type NavigationProfile string

const (
	NavigationSimple NavigationProfile = "simple"
	NavigationGuided NavigationProfile = "guided"
	NavigationPower  NavigationProfile = "power"
)

type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodNight     Period = "night"
)

// Needs are the self-declared cognitive needs. They seed the cognitive panel
// until the user saves explicit preferences.
type Needs struct {
	ShortTexts            bool `json:"shortTexts"`
	ReduceStimuli         bool `json:"reduceStimuli"`
	HighContrastPreferred bool `json:"highContrastPreferred"`
	GentleReminders       bool `json:"gentleReminders"`
}

// Routine describes how the user likes to work. PreferredFocusMinutes is the
// focus length used when no timer settings were saved.
type Routine struct {
	WorkOrStudy           string `json:"workOrStudy" validate:"oneof=work study"`
	PreferredFocusMinutes int    `json:"preferredFocusMinutes" validate:"gte=1,lte=180"`
	SessionsPerDayGoal    int    `json:"sessionsPerDayGoal" validate:"gte=1,lte=24"`
	PreferredPeriod       Period `json:"preferredPeriod" validate:"oneof=morning afternoon night"`
}

type Profile struct {
	DisplayName       string            `json:"displayName" validate:"required,max=80"`
	NavigationProfile NavigationProfile `json:"navigationProfile" validate:"oneof=simple guided power"`
	Needs             Needs             `json:"needs"`
	Routine           Routine           `json:"routine"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// Default is the profile used when none has been saved.
func Default() Profile {
	return Profile{
		DisplayName:       "User",
		NavigationProfile: NavigationGuided,
		Needs: Needs{
			ShortTexts:      true,
			GentleReminders: true,
		},
		Routine: Routine{
			WorkOrStudy:           "study",
			PreferredFocusMinutes: 25,
			SessionsPerDayGoal:    4,
			PreferredPeriod:       PeriodMorning,
		},
	}
}

var validate = validator.New()

// Validate trims the display name and checks every field is in range.
func (p *Profile) Validate() error {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %s", ErrInvalid, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
