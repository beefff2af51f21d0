package entry

import "errors"

// ErrInvalidTransition indicates the caller requested a wizard step change that
// the current step does not allow. A correctly wired client never triggers it.
var ErrInvalidTransition = errors.New("invalid wizard transition")

// ErrNoValidItems indicates the worksheet holds no named rows, so it cannot be
// reviewed or assembled into a log.
var ErrNoValidItems = errors.New("at least one named item is required")

// ErrLastRow indicates an attempt to remove the only remaining worksheet row.
var ErrLastRow = errors.New("the last remaining row cannot be removed")

// ErrIndexOutOfRange indicates an item edit referenced a row that does not exist.
var ErrIndexOutOfRange = errors.New("item index out of range")

// ErrUnknownField indicates an item edit named a field the worksheet does not have.
var ErrUnknownField = errors.New("unknown item field")

// ErrRecognitionBusy indicates a recognition call is already outstanding for
// this worksheet.
var ErrRecognitionBusy = errors.New("recognition already in progress")

// IsValidation reports whether err is a recoverable, user-facing validation
// failure rather than a wiring defect.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoValidItems) ||
		errors.Is(err, ErrLastRow) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrUnknownField) ||
		errors.Is(err, ErrRecognitionBusy)
}
