package recommender

import (
	"errors"
	"fmt"
)

// Failure reasons reported on UpstreamError and in fallback metrics.
const (
	ReasonNetwork     = "network"
	ReasonStatus      = "status"
	ReasonDecode      = "decode"
	ReasonBreakerOpen = "breaker_open"
	ReasonDisabled    = "disabled"
	ReasonCanceled    = "canceled"
)

// Sentinel error kinds for this package.
var (
	// ErrUpstream marks any failure to get an answer from the engine. It is
	// recovered by the offline fallback and never shown to users.
	ErrUpstream = errors.New("recommendation engine unavailable")
	ErrNoMock   = errors.New("no fallback recommender configured")
)

// UpstreamError describes why an engine call failed.
type UpstreamError struct {
	Reason     string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s: http %d", ErrUpstream, e.Reason, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", ErrUpstream, e.Reason, e.Err)
	default:
		return fmt.Sprintf("%s: %s", ErrUpstream, e.Reason)
	}
}

// Is makes errors.Is(err, ErrUpstream) hold for every UpstreamError.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

func (e *UpstreamError) Unwrap() error { return e.Err }

// ReasonOf extracts the failure reason of an upstream error.
func ReasonOf(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Reason
	}
	return ReasonNetwork
}

func upstreamErr(reason string, err error) error {
	return &UpstreamError{Reason: reason, Err: err}
}
