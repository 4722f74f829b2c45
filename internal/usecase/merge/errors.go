package merge

import "fmt"

// MergeError reports a failed lookup or write for one record. The sync run logs it
// and moves on to the next record.
type MergeError struct {
	Kind string
	Key  string
	Err  error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge %s %q: %v", e.Kind, e.Key, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}
