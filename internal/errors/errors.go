// Package errors provides sentinel errors and custom error types for the ghup application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrLocalIO indicates that a local file or directory could not be read
	ErrLocalIO = errors.New("local I/O error")

	// ErrNetwork indicates that a request never produced an HTTP response
	ErrNetwork = errors.New("network error")

	// ErrRemoteAPI indicates that the contents API answered with a non-success status
	ErrRemoteAPI = errors.New("remote API error")

	// ErrIncompleteUpload indicates that at least one file in a batch failed
	ErrIncompleteUpload = errors.New("upload incomplete")

	// ErrMissingConfig indicates that a required configuration value is empty
	ErrMissingConfig = errors.New("missing configuration")
)

// ErrorKind classifies why a single file upload failed
type ErrorKind int

const (
	// KindNone is the zero value; it is never attached to an UploadError
	KindNone ErrorKind = iota
	// KindLocalIO covers unreadable files and directories
	KindLocalIO
	// KindNetwork covers DNS, connection, timeout and cancellation failures
	KindNetwork
	// KindRemoteAPI covers any HTTP response other than 200/201
	KindRemoteAPI
)

func (k ErrorKind) String() string {
	switch k {
	case KindLocalIO:
		return "local-io"
	case KindNetwork:
		return "network"
	case KindRemoteAPI:
		return "remote-api"
	default:
		return "none"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindLocalIO:
		return ErrLocalIO
	case KindNetwork:
		return ErrNetwork
	case KindRemoteAPI:
		return ErrRemoteAPI
	default:
		return nil
	}
}

// UploadError represents the failure of a single file upload
type UploadError struct {
	Kind       ErrorKind
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason())
}

// Reason describes the failure without the path
func (e *UploadError) Reason() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	return msg
}

// Unwrap returns the underlying cause, if any
func (e *UploadError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error belonging to the error's kind
func (e *UploadError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewLocalIOError creates an UploadError for a local read failure
func NewLocalIOError(path string, err error) *UploadError {
	return &UploadError{
		Kind: KindLocalIO,
		Path: path,
		Err:  err,
	}
}

// NewNetworkError creates an UploadError for a transport failure
func NewNetworkError(path string, err error) *UploadError {
	return &UploadError{
		Kind: KindNetwork,
		Path: path,
		Err:  err,
	}
}

// NewRemoteAPIError creates an UploadError for a non-success API response
func NewRemoteAPIError(path string, statusCode int, message string, err error) *UploadError {
	if message == "" {
		message = "Unknown error"
	}
	return &UploadError{
		Kind:       KindRemoteAPI,
		Path:       path,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// KindOf returns the ErrorKind carried by err, or KindNone
func KindOf(err error) ErrorKind {
	var ue *UploadError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return KindNone
}

// MissingConfigError reports a required configuration key that has no value
type MissingConfigError struct {
	Key  string
	Hint string
}

func (e *MissingConfigError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s is not configured (%s)", e.Key, e.Hint)
	}
	return fmt.Sprintf("%s is not configured", e.Key)
}

// Is returns true if the target error is ErrMissingConfig
func (e *MissingConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewMissingConfigError creates a new MissingConfigError
func NewMissingConfigError(key, hint string) *MissingConfigError {
	return &MissingConfigError{Key: key, Hint: hint}
}

// IncompleteUploadError reports how many files of a batch failed
type IncompleteUploadError struct {
	Failed int
	Total  int
}

func (e *IncompleteUploadError) Error() string {
	return fmt.Sprintf("%d of %d files failed to upload", e.Failed, e.Total)
}

// Is returns true if the target error is ErrIncompleteUpload
func (e *IncompleteUploadError) Is(target error) bool {
	return target == ErrIncompleteUpload
}

// NewIncompleteUploadError creates a new IncompleteUploadError
func NewIncompleteUploadError(failed, total int) *IncompleteUploadError {
	return &IncompleteUploadError{Failed: failed, Total: total}
}
