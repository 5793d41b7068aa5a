package gamesave

import (
	"errors"
	"fmt"
	"net/http"
)

// Status is the raw int32 result code reported by a storage backend.
type Status int32

// Remote statuses. The values match the platform game-save error codes.
const (
	StatusOK                     Status = 0
	StatusAbort                  Status = -2147467260
	StatusInvalidContainerName   Status = -2138898431
	StatusNoAccess               Status = -2138898430
	StatusOutOfLocalStorage      Status = -2138898429
	StatusUserCanceled           Status = -2138898428
	StatusUpdateTooBig           Status = -2138898427
	StatusQuotaExceeded          Status = -2138898426
	StatusProvidedBufferTooSmall Status = -2138898425
	StatusBlobNotFound           Status = -2138898424
	StatusNoAccountInfo          Status = -2138898423
	StatusContainerNotInSync     Status = -2138898422
	StatusContainerSyncFailed    Status = -2138898421
	StatusUserHasNoAccountInfo   Status = -2138898420
	StatusObjectExpired          Status = -2138898419
)

// Outcome is the closed set of results of a container operation.
type Outcome uint8

const (
	OutcomeOK Outcome = iota
	OutcomeAborted
	OutcomeBlobNotFound
	OutcomeContainerNotInSync
	OutcomeContainerSyncFailed
	OutcomeInvalidContainerName
	OutcomeNoAccess
	OutcomeQuotaExceeded
	OutcomeUpdateTooBig
	OutcomeUserCanceled
	OutcomeOutOfLocalStorage
	OutcomeProvidedBufferTooSmall
	OutcomeObjectExpired
	OutcomeUserHasNoAccountInfo
	OutcomeNoAccountInfo

	maxOutcome = OutcomeNoAccountInfo
)

var statusOutcomes = map[Status]Outcome{
	StatusOK:                     OutcomeOK,
	StatusAbort:                  OutcomeAborted,
	StatusInvalidContainerName:   OutcomeInvalidContainerName,
	StatusNoAccess:               OutcomeNoAccess,
	StatusOutOfLocalStorage:      OutcomeOutOfLocalStorage,
	StatusUserCanceled:           OutcomeUserCanceled,
	StatusUpdateTooBig:           OutcomeUpdateTooBig,
	StatusQuotaExceeded:          OutcomeQuotaExceeded,
	StatusProvidedBufferTooSmall: OutcomeProvidedBufferTooSmall,
	StatusBlobNotFound:           OutcomeBlobNotFound,
	StatusNoAccountInfo:          OutcomeNoAccountInfo,
	StatusContainerNotInSync:     OutcomeContainerNotInSync,
	StatusContainerSyncFailed:    OutcomeContainerSyncFailed,
	StatusUserHasNoAccountInfo:   OutcomeUserHasNoAccountInfo,
	StatusObjectExpired:          OutcomeObjectExpired,
}

var outcomeNames = map[Outcome]string{
	OutcomeOK:                     "ok",
	OutcomeAborted:                "aborted",
	OutcomeBlobNotFound:           "blob_not_found",
	OutcomeContainerNotInSync:     "container_not_in_sync",
	OutcomeContainerSyncFailed:    "container_sync_failed",
	OutcomeInvalidContainerName:   "invalid_container_name",
	OutcomeNoAccess:               "no_access",
	OutcomeQuotaExceeded:          "quota_exceeded",
	OutcomeUpdateTooBig:           "update_too_big",
	OutcomeUserCanceled:           "user_canceled",
	OutcomeOutOfLocalStorage:      "out_of_local_storage",
	OutcomeProvidedBufferTooSmall: "provided_buffer_too_small",
	OutcomeObjectExpired:          "object_expired",
	OutcomeUserHasNoAccountInfo:   "user_has_no_account_info",
	OutcomeNoAccountInfo:          "no_account_info",
}

var outcomesByName = func() map[string]Outcome {
	m := make(map[string]Outcome, len(outcomeNames))
	for o, name := range outcomeNames {
		m[name] = o
	}
	return m
}()

// Translate maps a remote status to its Outcome. The boolean is false for
// statuses outside the defined set; callers must not treat those as success.
func Translate(s Status) (Outcome, bool) {
	o, ok := statusOutcomes[s]
	return o, ok
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome_%d", uint8(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if o > maxOutcome {
		return nil, fmt.Errorf("invalid outcome %d", uint8(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(data []byte) error {
	out, ok := outcomesByName[string(data)]
	if !ok {
		return fmt.Errorf("invalid outcome %q", data)
	}
	*o = out
	return nil
}

// OK reports whether o is OutcomeOK.
func (o Outcome) OK() bool {
	return o == OutcomeOK
}

// HTTPStatus returns the HTTP status code used to report o.
func (o Outcome) HTTPStatus() int {
	switch o {
	case OutcomeOK:
		return http.StatusOK
	case OutcomeAborted, OutcomeContainerNotInSync:
		return http.StatusConflict
	case OutcomeBlobNotFound:
		return http.StatusNotFound
	case OutcomeContainerSyncFailed:
		return http.StatusServiceUnavailable
	case OutcomeInvalidContainerName, OutcomeProvidedBufferTooSmall:
		return http.StatusBadRequest
	case OutcomeNoAccess:
		return http.StatusForbidden
	case OutcomeQuotaExceeded, OutcomeOutOfLocalStorage:
		return http.StatusInsufficientStorage
	case OutcomeUpdateTooBig:
		return http.StatusRequestEntityTooLarge
	case OutcomeUserCanceled:
		return 499
	case OutcomeObjectExpired:
		return http.StatusGone
	case OutcomeUserHasNoAccountInfo, OutcomeNoAccountInfo:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// OutcomeError is an error carrying a non-OK Outcome.
type OutcomeError struct {
	Outcome Outcome
}

func (e *OutcomeError) Error() string {
	return "game save: " + e.Outcome.String()
}

// Is reports whether target is an OutcomeError with the same Outcome.
func (e *OutcomeError) Is(target error) bool {
	var other *OutcomeError
	if !errors.As(target, &other) {
		return false
	}
	return other.Outcome == e.Outcome
}

// Err returns nil for OutcomeOK and an *OutcomeError otherwise.
func (o Outcome) Err() error {
	if o == OutcomeOK {
		return nil
	}
	return &OutcomeError{Outcome: o}
}

// OutcomeOf extracts the Outcome from err. A nil error is OutcomeOK and an
// error without an Outcome is OutcomeNoAccess.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	var oe *OutcomeError
	if errors.As(err, &oe) {
		return oe.Outcome
	}
	return OutcomeNoAccess
}
