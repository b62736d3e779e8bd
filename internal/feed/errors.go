package feed

import "fmt"

// UpstreamError reports a non-2xx response from the feed source. The status
// is kept so callers can surface it as a server-side failure, distinct from
// bad client input.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("feed returned HTTP %d", e.Status)
}

// DecodeError reports a payload that could not be parsed as a GTFS-RT
// feed message.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode feed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
