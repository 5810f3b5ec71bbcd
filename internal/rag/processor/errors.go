package processor

import "fmt"

// InputError means the request was rejected before any external call was
// made. Callers surface it as a client error.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

// ProviderError wraps a failed embedding or vector-store call. The core
// never retries these; retry policy belongs to the job layer. Callers on the
// query path may choose to degrade to an empty result instead of failing.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider call %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StorageError reports which batch failed during chunk storage so a retry
// can resume from that batch instead of restarting the whole ingestion.
type StorageError struct {
	Batch int
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storing batch %d failed: %v", e.Batch, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
