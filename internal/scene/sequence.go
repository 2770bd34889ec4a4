package scene

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/vatbake/pkg/obj"
)

// Sequence is a Scene backed by numbered OBJ files, one file per frame.
// The pattern must contain a printf integer verb, e.g.
// "frames/walk_%04d.obj".
type Sequence struct {
	pattern string
	frame   int
}

// NewSequence creates a Sequence for the given filename pattern.
func NewSequence(pattern string) (*Sequence, error) {
	if !strings.Contains(pattern, "%") {
		return nil, fmt.Errorf("pattern %q has no frame number verb", pattern)
	}
	return &Sequence{pattern: pattern}, nil
}

// Frame returns the current frame cursor.
func (s *Sequence) Frame() int { return s.frame }

// SetFrame moves the frame cursor. The file is not touched until
// Evaluate.
func (s *Sequence) SetFrame(frame int) error {
	s.frame = frame
	return nil
}

// Evaluate loads and parses the OBJ file for the current frame.
func (s *Sequence) Evaluate() (*obj.Mesh, error) {
	path := fmt.Sprintf(s.pattern, s.frame)
	m, err := obj.ParseFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "frame %d (%s)", s.frame, path)
	}
	return m, nil
}
