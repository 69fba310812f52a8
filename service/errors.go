package service

import (
	"errors"
	"fmt"
	"time"
)

// NetworkError wraps any transport-level failure talking to the daemon.
// The operation is aborted; no retry is attempted.

type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// TimeoutError is reported when a request exceeds the client timeout.

type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s", e.After)
}

func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// RemoteError is a failure the daemon reported inside a stream
// (a line carrying {"error": ...}) or an incomplete transfer.

type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

const (
	UserCancelCommon          = "[Operation Cancelled]"
	UserCancelReasonInterrupt = "Interrupted by user."
)

// UserCancelError is a sentinel error used to signal that the user has
// cancelled an in-flight operation. The current call is abandoned and no
// partial result is persisted.

type UserCancelError struct {
	Reason string
}

func (e *UserCancelError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s Reason: %s", UserCancelCommon, e.Reason)
	}
	return UserCancelCommon
}

func IsUserCancelError(err error) bool {
	var ce *UserCancelError
	return errors.As(err, &ce)
}
