package holes

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized     = errors.New("game is not initialized")
	ErrAlreadyInitialized = errors.New("game is already initialized")
)

// ConfigError is returned by [New] when a game parameter is out of its
// allowed range.
type ConfigError struct {
	Param    string
	Value    int
	Min, Max int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf(
		"%s must be between %d and %d, got %d", e.Param, e.Min, e.Max, e.Value,
	)
}

// OutOfRangeError is returned when an action addresses a cell outside of the
// field.
type OutOfRangeError struct {
	Point Point
	Side  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf(
		"cell %s is outside of %dx%d field", e.Point, e.Side, e.Side,
	)
}

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
