package http

import (
	"github.com/shiftbook/shiftbook/internal/invites/domain"
	"github.com/shiftbook/shiftbook/pkg/invitesdk"
)

// toSDKInvitation maps a domain invitation onto the wire type. The token
// fingerprint deliberately has no counterpart on the wire.
func toSDKInvitation(inv domain.Invitation) invitesdk.Invitation {
	return invitesdk.Invitation{
		ID:              inv.ID,
		Email:           inv.Email,
		Role:            string(inv.Role),
		Department:      inv.Department,
		JobTitle:        inv.JobTitle,
		HourlyRate:      inv.HourlyRate,
		Permissions:     inv.Permissions,
		PersonalMessage: inv.PersonalMessage,
		Status:          string(inv.Status),
		ExpiresAt:       inv.ExpiresAt,
		CreatedBy:       inv.CreatedBy,
		EmailSentAt:     inv.EmailSentAt,
		ResendCount:     inv.ResendCount,
		LastResentAt:    inv.LastResentAt,
		AcceptedAt:      inv.AcceptedAt,
		AcceptedBy:      inv.AcceptedBy,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// toSDKUser maps a user profile onto the wire type. The password hash never
// leaves the service.
func toSDKUser(u domain.User) invitesdk.User {
	return invitesdk.User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		Department:  u.Department,
		JobTitle:    u.JobTitle,
		HourlyRate:  u.HourlyRate,
		Permissions: u.Permissions,
		Preferences: invitesdk.Preferences{
			Timezone:       u.Preferences.Timezone,
			Language:       u.Preferences.Language,
			WeekStart:      u.Preferences.WeekStart,
			TimeFormat:     u.Preferences.TimeFormat,
			EmailReminders: u.Preferences.EmailReminders,
		},
		ContactPhone: u.ContactPhone,
		CreatedAt:    u.CreatedAt,
	}
}

func toDomainPreferencesPatch(p invitesdk.PreferencesPatch) domain.PreferencesPatch {
	return domain.PreferencesPatch{
		Timezone:       p.Timezone,
		Language:       p.Language,
		WeekStart:      p.WeekStart,
		TimeFormat:     p.TimeFormat,
		EmailReminders: p.EmailReminders,
	}
}
