package rendezvous

import "fmt"

// InvalidInput reports a construction- or build-time input the rendezvous
// cannot proceed with: a mesh dimension outside {1,2,3}, connectivity
// referencing an unknown node, or a global box with min > max on some axis
// (a zero-extent box is accepted).
type InvalidInput struct {
	Reason string
}

func (e *InvalidInput) Error() string {
	return fmt.Sprintf("rendezvous: invalid input: %s", e.Reason)
}
