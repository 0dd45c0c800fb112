package values

// Response statuses understood by util.StatusCode.
const (
	Success        = "success"
	Created        = "created"
	Error          = "error"
	BadRequestBody = "bad_request_body"
	Unprocessable  = "unprocessable"
	NotFound       = "not_found"
	Unavailable    = "unavailable"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderRequestSource = "X-Request-Source"
)

type contextKey string

const ContextTracingKey contextKey = "tracing"
