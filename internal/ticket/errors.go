package ticket

import "errors"

// Static errors returned by the store and the record codec.
var (
	// ErrMalformedHeader is returned when a ticket file has no delimiter line or a
	// header line without a "key:value" shape.
	ErrMalformedHeader = errors.New("malformed ticket header")
	// ErrCorruptTicketName is returned when a file in the ticket directory is not
	// named by a canonical non-negative integer.
	ErrCorruptTicketName = errors.New("corrupt ticket name")
	// ErrTicketNotFound is returned when no file exists for a ticket ID.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrTicketAlreadyExists is returned when a freshly allocated ID is already taken.
	ErrTicketAlreadyExists = errors.New("ticket already exists")
	// ErrInvalidID is returned when an ID argument is not a non-negative integer.
	ErrInvalidID = errors.New("invalid ticket id")
	// ErrInvalidStatus is returned when a status is not one of the known statuses.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidField is returned for header fields that cannot be stored.
	ErrInvalidField = errors.New("invalid header field")
)
