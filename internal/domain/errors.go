package domain

import (
	"errors"
	"fmt"
)

// Error kinds returned by the reservation engine. Specific errors wrap one of
// these, so callers match with errors.Is.
var (
	ErrNotFound          = errors.New("not_found")
	ErrInvalidRange      = errors.New("invalid_range")
	ErrRoomUnavailable   = errors.New("room_unavailable")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrValidation        = errors.New("validation_error")
	ErrConflict          = errors.New("conflict")
)

var (
	ErrRoomNotFound        = fmt.Errorf("room %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reservation %w", ErrNotFound)
	ErrInvoiceNotFound     = fmt.Errorf("invoice %w", ErrNotFound)
	ErrTaskNotFound        = fmt.Errorf("housekeeping task %w", ErrNotFound)
	ErrInvoiceExists       = fmt.Errorf("invoice already exists for reservation: %w", ErrConflict)
)

// Validationf builds an ErrValidation carrying a field-level message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
