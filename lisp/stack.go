package lisp

import (
	"fmt"
	"io"
)

// DefaultMaxDepth is the maximum height of a CallStack when no other limit
// is configured.
const DefaultMaxDepth = 10000

// CallStack tracks the declared functions being invoked by one evaluation.
// A CallStack is owned by a single top-level evaluation and is never shared
// between goroutines.
type CallStack struct {
	Frames    []CallFrame
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name string
	Args int
}

// Copy creates a copy of the current stack.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Height returns the number of frames on s.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Push pushes a new frame onto s.  Push returns an error of kind
// ErrRecursionLimit without modifying s if the stack is already at its
// maximum height.
func (s *CallStack) Push(name string, nargs int) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return errRecursionLimit(s.MaxHeight)
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Args: nargs})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		name := f.Name
		if name == "" {
			name = "<lambda>"
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s [%d args]\n", indent, i, name, f.Args)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
