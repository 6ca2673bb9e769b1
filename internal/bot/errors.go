package bot

import (
	"errors"
	"fmt"

	"github.com/ulandresort/ulandbot/internal/line"
)

// ErrorKind classifies dispatch failures so the HTTP layer and the logs can
// treat them differently.
type ErrorKind string

const (
	KindSignatureInvalid ErrorKind = "signature_invalid" // reject delivery, 400
	KindMalformedPayload ErrorKind = "malformed_payload" // reject delivery, 400
	KindSendFailure      ErrorKind = "send_failure"      // reply or push rejected; not retried
	KindProfileLookup    ErrorKind = "profile_lookup"    // non-fatal, generic salutation used
	KindInternal         ErrorKind = "internal"          // recovered panic inside one event
)

var (
	ErrSignatureInvalid = line.ErrInvalidSignature
	ErrMalformedPayload = line.ErrMalformedPayload
)

// DispatchError wraps a failure with its kind and the webhook event it
// belongs to (empty for delivery-level failures).
type DispatchError struct {
	Kind    ErrorKind
	EventID string
	Err     error
}

func (e *DispatchError) Error() string {
	if e.EventID == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s (event %s): %v", e.Kind, e.EventID, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// KindOf returns the kind of the first DispatchError in err's tree, or ""
// when there is none.
func KindOf(err error) ErrorKind {
	var de *DispatchError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
