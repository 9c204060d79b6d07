package productapi

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is returned for transport failures and non-2xx responses.
type RequestError struct {
	Op         string // list, create, update, delete
	Method     string
	URL        string
	StatusCode int    // 0 when no response was received
	Message    string // backend-provided error text, if any
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s products: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s products: backend returned %d: %s", e.Op, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s products: backend returned %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}
