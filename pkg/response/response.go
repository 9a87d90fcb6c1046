package response

// Response is the JSON envelope returned by every endpoint
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorData describes a failed request
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ListMeta is attached to collection responses
type ListMeta struct {
	Count int `json:"count"`
}

// Error codes shared across handlers
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeMissingToken       = "MISSING_TOKEN"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeUserExists         = "USER_EXISTS"
	ErrCodeUnavailable        = "SERVICE_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// Success wraps data in a successful envelope
func Success(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// List wraps a collection with its count
func List(data interface{}, count int) Response {
	return Response{Success: true, Data: data, Meta: ListMeta{Count: count}}
}

// Error builds a failed envelope with the given code
func Error(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
		},
	}
}

// ErrorWithDetails builds a failed envelope carrying extra details
func ErrorWithDetails(code, message, details string) Response {
	resp := Error(code, message)
	resp.Error.Details = details
	return resp
}

func BadRequest(message string) Response {
	return Error(ErrCodeBadRequest, message)
}

func Unauthorized(message string) Response {
	return Error(ErrCodeUnauthorized, message)
}

func Forbidden(message string) Response {
	return Error(ErrCodeForbidden, message)
}

func NotFound(message string) Response {
	return Error(ErrCodeNotFound, message)
}

func Conflict(message string) Response {
	return Error(ErrCodeConflict, message)
}

func ServiceUnavailable(message string) Response {
	return Error(ErrCodeUnavailable, message)
}

// InternalError hides the cause from the client
func InternalError(message string) Response {
	return Error(ErrCodeInternal, message)
}
