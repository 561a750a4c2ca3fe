package analysis

import (
	"errors"
	"fmt"
)

// ErrAlreadyBuilt is returned by a second cache build.
var ErrAlreadyBuilt = errors.New("analysis cache already built")

// NotReadyError is returned when a report is not (yet) in the cache.
type NotReadyError struct {
	Name Name
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s data is not available in the cache.", e.Name)
}
