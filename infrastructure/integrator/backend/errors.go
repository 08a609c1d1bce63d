package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrFetchFailure matches every FetchError through errors.Is.
var ErrFetchFailure = errors.New("backend fetch failure")

// FetchError is a failed call to the upstream backend: a transport error, a
// non-2xx status or an {"error": ...} body.
type FetchError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream returned %d: %s", e.Op, e.Status, msg)
	}
	if e.Op == "" {
		return fmt.Sprintf("upstream error: %s", msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailure
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Status == http.StatusNotFound
}
