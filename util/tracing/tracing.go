package tracing

// Context carries the per-request tracing identifiers assigned by the
// RequestTracing middleware.
type Context struct {
	RequestID     string `json:"request_id"`
	RequestSource string `json:"request_source"`
}
