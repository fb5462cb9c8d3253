package preproc

// frame is one level of the conditional stack.
type frame int

const (
	// frameUnresolved is pushed by a plain "if"; its expression is never
	// evaluated and it never suppresses output.
	frameUnresolved frame = iota
	frameTrue
	frameFalse
)

func (f frame) String() string {
	switch f {
	case frameTrue:
		return "true"
	case frameFalse:
		return "false"
	default:
		return "unresolved"
	}
}

func frameFor(cond bool) frame {
	if cond {
		return frameTrue
	}
	return frameFalse
}

type condStack struct {
	frames []frame
}

func (c *condStack) push(f frame) {
	c.frames = append(c.frames, f)
}

// invert flips the top frame between true and false. It returns false when
// the stack is empty.
func (c *condStack) invert() bool {
	if len(c.frames) == 0 {
		return false
	}
	top := &c.frames[len(c.frames)-1]
	switch *top {
	case frameTrue:
		*top = frameFalse
	case frameFalse:
		*top = frameTrue
	}
	return true
}

// pop removes the top frame. It returns false when the stack is empty.
func (c *condStack) pop() bool {
	if len(c.frames) == 0 {
		return false
	}
	c.frames = c.frames[:len(c.frames)-1]
	return true
}

func (c *condStack) depth() int { return len(c.frames) }

// suppressed reports whether any frame on the stack is false.
func (c *condStack) suppressed() bool {
	for _, f := range c.frames {
		if f == frameFalse {
			return true
		}
	}
	return false
}
