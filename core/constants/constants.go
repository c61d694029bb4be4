package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Timeouts
const (
	DefaultTimeout      = 30 * time.Second
	ProviderCallTimeout = 10 * time.Second
	ShutdownTimeout     = 10 * time.Second
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "auth:blacklist:"
	RedisKeyOAuthState     = "auth:oauth_state:"
)

// Scheduling defaults. Business hours are half-open [start, end) in the
// configured search timezone.
const (
	DefaultBusinessHoursStart = 9
	DefaultBusinessHoursEnd   = 17
	SlotGranularityMinutes    = 30
	DefaultSlotCap            = 10
	DefaultDurationMinutes    = 30
	DefaultDaysToCheck        = 7

	MinDurationMinutes = 15
	MaxDurationMinutes = 180
	MinDaysToCheck     = 1
	MaxDaysToCheck     = 14
)

// Token freshness policy: a stored access token is treated as expired once it
// is within this buffer of its expiry, so a token cannot go stale mid-request.
const (
	TokenRefreshBuffer = 300 * time.Second
	OAuthStateTTL      = 10 * time.Minute
)

// Google API endpoints
const (
	GoogleCalendarAPIBase = "https://www.googleapis.com/calendar/v3"
	GoogleFreeBusyAPI     = GoogleCalendarAPIBase + "/freeBusy"
	GoogleEventsAPI       = GoogleCalendarAPIBase + "/calendars/primary/events"
	GoogleTokenURL        = "https://oauth2.googleapis.com/token"
	GoogleUserInfoAPI     = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Pagination defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)
