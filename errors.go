package outbreak

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when parameters, time points or initial states are malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIntegrationDivergence is returned when the integrator cannot produce a finite solution.
	ErrIntegrationDivergence = errors.New("integration diverged")
)

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func divergedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIntegrationDivergence, fmt.Sprintf(format, args...))
}
