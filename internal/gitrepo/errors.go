package gitrepo

import "fmt"

// NetworkError reports a failed exchange with the remote during fetch or
// push. It is fatal for the operation that raised it and is never retried.
type NetworkError struct {
	Op     string
	Remote string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s against remote %q failed: %v", e.Op, e.Remote, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MissingTagError reports a tag that was referenced but does not exist in
// the repository. Commit queries treat it as an empty range rather than a
// failure.
type MissingTagError struct {
	Name string
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("tag %q not found", e.Name)
}
