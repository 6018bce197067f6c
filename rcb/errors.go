package rcb

import "fmt"

// PartitionError indicates RCB could not form a partition: the active point
// count was zero across every rank, or the communicator has more ranks than
// there are active points to split among them.
type PartitionError struct {
	Reason string
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("rcb: partition failed: %s", e.Reason)
}
