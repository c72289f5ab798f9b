package constant

import "time"

const (
	Asterix = "*"
	Empty   = ""
)

type contextKey string

// ContextKeyIdentity holds the caller's identity.Identity.
const ContextKeyIdentity contextKey = "identity"

// Roles, in descending order of power. Guest is the role of an anonymous
// caller and is never stored.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
	ContextGuest   = "guest"
)

// Listing query parameters and their defaults.
const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"

	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	MaxValueLimit       = 100
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

// Path and filter parameters.
const (
	RequestParamID        = "id"
	RequestParamType      = "type"
	RequestParamLocation  = "location"
	RequestParamName      = "name"
	RequestParamStartDate = "start_date"
	RequestParamEndDate   = "end_date"
	RequestParamFrom      = "from"
	RequestParamTo        = "to"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRetryAfter         = "Retry-After"
)

const (
	ContentTypeJSON  = "application/json"
	FormFile         = "file"
	RequestMaxMemory = 10 << 20
)

const (
	DefaultCookieName   = "token"
	CookieMaxAgeSeconds = int(7 * 24 * time.Hour / time.Second)
)

// Audit columns shared by every table.
const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation    = "23505"
	PqErrorCodeExclusionViolation = "23P01"
)

const (
	DateFormat  = time.RFC3339
	DayFormat   = time.DateOnly
	HoursPerDay = 24
)

// Span scopes and attribute keys.
const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"
	OtelS3ScopeName         = "s3"
	OtelKafkaScopeName      = "kafka"
	OtelRabbitScopeName     = "rabbitmq"

	OtelQueryAttributeKey = "query"
)

const (
	ResponseErrorInternal             = "internal server error"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

// Values of EVENTS_DRIVER.
const (
	EventsDriverNone     = "none"
	EventsDriverKafka    = "kafka"
	EventsDriverRabbitMQ = "rabbitmq"
)
