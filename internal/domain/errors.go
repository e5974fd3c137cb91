package domain

import "errors"

var (
	ErrInvalidDateFormat  = errors.New("invalid date format")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrChartNotFound      = errors.New("birth chart not found")
	ErrInvalidPhaseName   = errors.New("invalid phase name")
	ErrMissingLocation    = errors.New("missing birth location")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserID      = errors.New("invalid user id")
)

// IsValidationError ошибки входных данных, которые отдаются клиенту как 400
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDateFormat) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidPhaseName) ||
		errors.Is(err, ErrMissingLocation) ||
		errors.Is(err, ErrInvalidCoordinates) ||
		errors.Is(err, ErrInvalidUserID)
}

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}
