package domain

// Preferences are per-user display settings. New accounts start from
// DefaultPreferences and merge whatever the acceptor supplied, field by
// field, instead of handlers poking at optional values ad hoc.
type Preferences struct {
	Timezone       string `json:"timezone"`
	Language       string `json:"language"`
	WeekStart      string `json:"week_start"`      // "monday" or "sunday"
	TimeFormat     string `json:"time_format"`     // "12h" or "24h"
	EmailReminders bool   `json:"email_reminders"` // weekly timesheet nudges
}

// PreferencesPatch is a partial Preferences update; nil fields are left at
// their current value.
type PreferencesPatch struct {
	Timezone       *string `json:"timezone,omitempty"`
	Language       *string `json:"language,omitempty"`
	WeekStart      *string `json:"week_start,omitempty"`
	TimeFormat     *string `json:"time_format,omitempty"`
	EmailReminders *bool   `json:"email_reminders,omitempty"`
}

// DefaultPreferences returns the preferences a fresh account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Timezone:       "UTC",
		Language:       "en",
		WeekStart:      "monday",
		TimeFormat:     "24h",
		EmailReminders: true,
	}
}

// Merge returns a copy of p with the non-nil fields of patch applied.
func (p Preferences) Merge(patch PreferencesPatch) Preferences {
	if patch.Timezone != nil {
		p.Timezone = *patch.Timezone
	}
	if patch.Language != nil {
		p.Language = *patch.Language
	}
	if patch.WeekStart != nil {
		p.WeekStart = *patch.WeekStart
	}
	if patch.TimeFormat != nil {
		p.TimeFormat = *patch.TimeFormat
	}
	if patch.EmailReminders != nil {
		p.EmailReminders = *patch.EmailReminders
	}
	return p
}
