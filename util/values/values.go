package values

// Response statuses. These are the internal error kinds handlers pass
// around; util.StatusCode maps them to HTTP status codes.
const (
	Success        = "success"
	Created        = "created"
	Error          = "error"
	Failed         = "failed"
	BadRequestBody = "bad-request-body"
	Unprocessable  = "unprocessable"
	NotAuthorised  = "not-authorised"
	TokenExpired   = "token-expired"
	NotAllowed     = "not-allowed"
	Invariant      = "invariant-violation"
	NotFound       = "not-found"
	Conflict       = "conflict"
	Capacity       = "capacity-exceeded"
	ActiveLogin    = "active-login"

	SystemErr = "Something went wrong, please try again later."
)

// Request headers.
const (
	HeaderRequestSource = "X-Request-Source"
	HeaderRequestID     = "X-Request-Id"
)

type contextKey string

// ContextTracingKey holds the tracing.Context for the request.
const ContextTracingKey = contextKey("tracing-context")

// ContextUserIDKey holds the authenticated user's id, set by RequireLogin.
const ContextUserIDKey = contextKey("user_id")
