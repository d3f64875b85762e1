package trakt

import "fmt"

// RequestFailedError is a terminal API failure: any status that is not
// success, not the 404 no-data case, and not a retried-out 502. It carries
// the status and body for diagnostics.
type RequestFailedError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// DecodeError indicates a success response whose body was not valid JSON.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
