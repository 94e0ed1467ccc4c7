package studentcourses

import "fmt"

// TransportError is returned when the request never produced an HTTP response,
// ex. DNS failure, connection refused, timeouts or a cancelled context.
type TransportError struct {
	Url string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: GET %s: %s", e.Url, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestFailedError is returned for any response status other than 200.
type RequestFailedError struct {
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("HTTP request failed with status code: %d, body: %s", e.StatusCode, e.Body)
}
