package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("Holiday not found")
	ErrDateTaken       = errors.New("A holiday already exists on this date")
)
