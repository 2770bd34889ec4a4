package sampler

import "fmt"

// TopologyChangedError reports that the scene produced a mesh whose
// topology no longer matches the rest pose. Baking cannot continue past
// such a frame: point indices would shift and corrupt the whole map.
type TopologyChangedError struct {
	Frame int
	Err   error
}

func (e *TopologyChangedError) Error() string {
	return fmt.Sprintf("topology changed at frame %d: %v", e.Frame, e.Err)
}

func (e *TopologyChangedError) Unwrap() error { return e.Err }

// SampleError reports a point whose evaluated geometry is unusable at a
// specific frame, so the offending frame and point can be reported
// together.
type SampleError struct {
	Point  int
	Frame  int
	Detail string
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("point %d at frame %d: %s", e.Point, e.Frame, e.Detail)
}
