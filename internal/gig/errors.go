package gig

import "errors"

// Messages shown to the user.
const (
	MsgSelectMeridiem = "You must select either a.m. or p.m."
	MsgInvalidTime    = "You must enter a valid time"
	MsgSelectYear     = "Please select a year."
	MsgDateFormat     = "You must use (M)M-(D)D format."
	MsgInvalidDate    = "You must enter a valid date."
	MsgDoubleBooked   = "You already have a gig at this time!"
	MsgCreated        = "Gig created successfully!"
	MsgEdited         = "Gig edited successfully!"
	MsgUnchanged      = "Gig was unchanged"
	MsgNotFound       = "That gig does not exist."
)

// Domain errors.
var (
	ErrConflict    = errors.New("gig already booked at this date and time")
	ErrGigNotFound = errors.New("gig not found")
)

// ValidationError reports malformed date or time input. Error returns the
// user-facing message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Message maps an error returned by this package to the text shown to the
// user. Unknown errors map to their Error() string.
func Message(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, ErrConflict):
		return MsgDoubleBooked
	case errors.Is(err, ErrGigNotFound):
		return MsgNotFound
	default:
		return err.Error()
	}
}
