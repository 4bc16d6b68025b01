package sorting

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidField is returned by Orderable implementations asked to
	// order by a field they do not know.
	ErrInvalidField = errors.New("sorting: invalid field")
	// ErrNotFound is what strict mode reports for an invalid sort field so
	// handlers can answer 404.
	ErrNotFound = errors.New("sorting: invalid field sorting")
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// WriteError answers with the status carried by err, or 500 when err does not
// carry one.
func WriteError(w http.ResponseWriter, err error) {
	if w == nil || err == nil {
		return
	}
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}
