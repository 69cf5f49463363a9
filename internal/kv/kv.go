package kv

import "context"

// Storage keys. Values are JSON text except for the language, theme, device id
// and onboarding flag, which are stored as plain strings.
const (
	KeyFavorites           = "@cocktail_app_favorites"
	KeyCollections         = "@cocktail_app_collections"
	KeyOnboardingCompleted = "@cocktail_app_onboarding_completed"
	KeyUserPreferences     = "@cocktail_app_user_preferences"
	KeyLanguage            = "@cocktail_app_language"
	KeyCommunity           = "@cocktail_app_community"
	KeyTheme               = "@cocktail_app_theme"
	KeyDeviceID            = "@cocktail_app_device_id"
)

// Adapter is a string key/value store that survives restarts.
// A missing key is reported with found=false and a nil error.
type Adapter interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Scheduler accepts best-effort writes that must not block the caller.
// *Writer implements it.
type Scheduler interface {
	Schedule(key, value string)
}
