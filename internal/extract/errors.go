package extract

import "fmt"

// ErrExtraction indicates that a document could not be turned into
// usable text.
type ErrExtraction struct {
	Reason string
	Err    error
}

func (e *ErrExtraction) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extract document: %s", e.Reason)
}

func (e *ErrExtraction) Unwrap() error { return e.Err }
