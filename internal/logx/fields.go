package logx

const (
	FieldDurationMs     = "duration-ms"
	FieldError          = "error"
	FieldHTTPMethod     = "http-method"
	FieldHTTPRequest    = "http-request"
	FieldHTTPResponse   = "http-response"
	FieldIP             = "ip"
	FieldMode           = "mode"
	FieldRequestBody    = "request-body"
	FieldRequestID      = "request-id"
	FieldResponseBody   = "response-body"
	FieldResponseStatus = "response-status"
	FieldRoute          = "route"
	FieldStack          = "stack"
	FieldTraceID        = "trace-id"
	FieldUpstream       = "upstream"
	FieldURL            = "url"
)
