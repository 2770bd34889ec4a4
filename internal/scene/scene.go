// Package scene abstracts the host application that evaluates animated
// geometry. The baking pipeline only ever moves the scene's frame cursor
// and reads back the evaluated mesh; everything else is the host's
// business.
package scene

import "github.com/Faultbox/vatbake/pkg/obj"

// Scene is the host-side collaborator the sampler drives. The frame
// cursor is shared mutable state: callers that change it are responsible
// for restoring the original frame on every exit path.
type Scene interface {
	// Frame returns the current frame cursor.
	Frame() int
	// SetFrame moves the frame cursor. Evaluation state may depend on
	// prior frames, so callers must advance in increasing order.
	SetFrame(frame int) error
	// Evaluate returns the mesh at the current frame.
	Evaluate() (*obj.Mesh, error)
}

// Func adapts an evaluation function to a Scene, for hosts that produce
// geometry in memory.
type Func struct {
	frame int
	Eval  func(frame int) (*obj.Mesh, error)
}

// Frame returns the current frame cursor.
func (f *Func) Frame() int { return f.frame }

// SetFrame moves the frame cursor.
func (f *Func) SetFrame(frame int) error {
	f.frame = frame
	return nil
}

// Evaluate calls Eval with the current frame.
func (f *Func) Evaluate() (*obj.Mesh, error) {
	return f.Eval(f.frame)
}
