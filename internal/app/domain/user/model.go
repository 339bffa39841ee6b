// Package user holds the account owner model and per-user settings.
package user

import "time"

// User is an authenticated account owner. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Theme        string    `json:"theme"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Settings are per-user preferences with server-side defaults.
type Settings struct {
	UserID             string    `json:"user_id"`
	Theme              string    `json:"theme"`
	Notifications      bool      `json:"notifications"`
	Sound              bool      `json:"sound"`
	Language           string    `json:"language"`
	Timezone           string    `json:"timezone"`
	DateFormat         string    `json:"date_format"`
	Currency           string    `json:"currency"`
	DarkMode           bool      `json:"dark_mode"`
	EmailNotifications bool      `json:"email_notifications"`
	PushNotifications  bool      `json:"push_notifications"`
	WeeklyDigest       bool      `json:"weekly_digest"`
	DataBackup         bool      `json:"data_backup"`
	PrivacyMode        bool      `json:"privacy_mode"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings a fresh account starts with.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:             userID,
		Theme:              "dracula",
		Notifications:      true,
		Sound:              false,
		Language:           "en",
		Timezone:           "UTC",
		DateFormat:         "MM/DD/YYYY",
		Currency:           "USD",
		DarkMode:           true,
		EmailNotifications: true,
		PushNotifications:  false,
		WeeklyDigest:       true,
		DataBackup:         true,
		PrivacyMode:        false,
	}
}
