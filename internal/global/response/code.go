package response

// Validation and precondition failures (400).
var (
	ErrInvalidRequest    = newError(40000, "invalid request")
	ErrNoActiveEvent     = newError(40001, "no active event")
	ErrStudentNotInEvent = newError(40002, "student not in active event")
	ErrEventNotFound     = newError(40003, "event not found")
)

var (
	ErrUnauthorized = newError(40100, "unauthorized")
	ErrTokenInvalid = newError(40101, "invalid or expired token")
	ErrForbidden    = newError(40300, "forbidden")
	ErrNotFound     = newError(40400, "not found")
)

// Upstream failures (500). Clients always see internalMessage.
var (
	ErrDatabase       = newError(50000, internalMessage)
	ErrEmail          = newError(50001, internalMessage)
	ErrStorage        = newError(50002, internalMessage)
	ErrServerInternal = newError(50099, internalMessage)
)

const internalMessage = "internal server error"
