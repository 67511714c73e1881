package settings

// DB config keys and defaults for settings.
const (
	// SiteNameKey is the DB config key for the UI site name.
	SiteNameKey = "SITE_NAME"
	// DefaultSiteName is the fallback UI site name.
	DefaultSiteName = "TravelAdmin"
	// SessionLifetimeSecondsKey overrides the configured session lifetime.
	SessionLifetimeSecondsKey = "SESSION_LIFETIME_SECONDS"
)
