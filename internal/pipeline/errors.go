package pipeline

import "fmt"

// SpawnError reports a recorder process that could not be launched
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("recorder could not be launched: %v", e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ProcessError reports a recorder that could not be signalled or did not
// exit cleanly
type ProcessError struct {
	Err error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("recorder did not stop cleanly: %v", e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// TranscriptionError reports a transcription run that failed or produced
// no usable text
type TranscriptionError struct {
	Backend string
	Err     error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription via %s failed: %v", e.Backend, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// ClipboardError reports a clipboard command that failed
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard copy failed: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }
