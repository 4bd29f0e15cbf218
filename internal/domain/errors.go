// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrEmptyList is returned when an operation needs a non-empty active list.
	ErrEmptyList = errors.New("list is empty")

	// ErrNoSelection is returned when an operation needs a selected track.
	ErrNoSelection = errors.New("no track selected")

	// ErrInvalidNavigationInput is returned by navigation strategies for an
	// index or count outside their preconditions.
	ErrInvalidNavigationInput = errors.New("invalid navigation input")

	// ErrInvalidVolume is returned when the volume is not an integer in 0-100.
	ErrInvalidVolume = errors.New("invalid volume: must be an integer between 0 and 100")

	// ErrDuplicateTrack is returned when a track is already present in a table.
	ErrDuplicateTrack = errors.New("track already exists")

	// ErrInvalidTableName is returned for table names outside the allowed alphabet.
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrTableNotFound is returned when a table does not exist.
	ErrTableNotFound = errors.New("table not found")

	// ErrPlaylistExists is returned when creating a playlist whose name is taken.
	ErrPlaylistExists = errors.New("playlist already exists")

	// ErrNoPlaylist is returned when an operation needs a chosen playlist.
	ErrNoPlaylist = errors.New("no playlist selected")

	// ErrNothingChosen is returned when a file or folder dialog yields nothing usable.
	ErrNothingChosen = errors.New("no files selected")

	// ErrNotInitialized is returned when an operation is attempted on an uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrAlreadyInitialized is returned when attempting to initialize an already initialized component.
	ErrAlreadyInitialized = errors.New("component already initialized")

	// ErrUnsupportedFormat is returned when an audio file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrFileNotFound is returned when a file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoTrackLoaded is returned when a transport command needs a loaded track.
	ErrNoTrackLoaded = errors.New("no track loaded")

	// ErrPlaybackFailed is returned when playback cannot be started.
	ErrPlaybackFailed = errors.New("playback failed")
)

// AudioEngineError represents an error from the audio engine.
// This wraps low-level audio library errors with additional context.
type AudioEngineError struct {
	Op      string // Operation that failed (e.g., "load", "pause", "stop")
	Path    string // File path (if applicable)
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *AudioEngineError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("audio engine %s failed for '%s': %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("audio engine %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *AudioEngineError) Unwrap() error {
	return e.Err
}

// NewAudioEngineError creates a new AudioEngineError.
func NewAudioEngineError(op, path, message string, err error) *AudioEngineError {
	return &AudioEngineError{
		Op:      op,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// RepositoryError represents an error from a track store.
// Sentinel causes such as ErrDuplicateTrack stay reachable through Unwrap.
type RepositoryError struct {
	Op      string // Operation that failed (e.g., "insert", "delete", "fetch_all")
	Table   string // Table involved, empty for store-wide operations
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("repository %s on %q failed: %s", e.Op, e.Table, e.Message)
	}
	return fmt.Sprintf("repository %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError.
func NewRepositoryError(op, table, message string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Table:   table,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents rejected input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   any    // Value that failed validation
	Message string // Error message
	Err     error  // Sentinel describing the failure
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Unwrap returns the sentinel cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// ServiceError represents an error from a service layer operation.
type ServiceError struct {
	Service string // Service name (e.g., "Orchestrator", "PlaylistService")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// ErrorKind is the severity with which an error is shown to the user.
type ErrorKind int

const (
	// KindNone means there is nothing to report.
	KindNone ErrorKind = iota

	// KindInfo covers expected conditions such as an empty list.
	KindInfo

	// KindWarning covers benign failures such as a duplicate track.
	KindWarning

	// KindCritical covers everything that aborted an operation unexpectedly.
	KindCritical
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInfo:
		return "info"
	case KindWarning:
		return "warning"
	case KindCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// KindOf classifies err for reporting. A nil error has KindNone.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyList),
		errors.Is(err, ErrNoSelection),
		errors.Is(err, ErrNothingChosen),
		errors.Is(err, ErrNoPlaylist):
		return KindInfo
	case errors.Is(err, ErrDuplicateTrack),
		errors.Is(err, ErrInvalidTableName),
		errors.Is(err, ErrPlaylistExists):
		return KindWarning
	default:
		return KindCritical
	}
}
