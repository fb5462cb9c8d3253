package preproc

import (
	"context"
	"fmt"
)

type spliceKind int

const (
	spliceBefore spliceKind = iota
	spliceBetween
	spliceAfter
	spliceEmpty
)

func (k spliceKind) String() string {
	return [...]string{"splice-before", "splice-between", "splice-after", "splice-empty"}[k]
}

// capturedLine is a line held verbatim until it is emitted.
type capturedLine struct {
	text string
	pos  Pos
}

// spliceSet holds the decoration blocks for the next section flush.
type spliceSet [4][]capturedLine

func (s *spliceSet) reset() { *s = spliceSet{} }

func spliceHandler(kind spliceKind) func(*fileParser, context.Context, *line) error {
	return func(fp *fileParser, _ context.Context, l *line) error {
		d, _ := lookupDirective(l.tokens[0])
		block, err := fp.capture(l, d)
		if err != nil {
			return err
		}
		fp.splices[kind] = block
		fp.note("captured %s block of %d line(s)", kind, len(block))
		return nil
	}
}

// emitBlock writes block with placeholders expanded for index.
func (fp *fileParser) emitBlock(block []capturedLine, index int) error {
	for _, c := range block {
		out, err := substitute(c.text, index, fp.st.defines)
		if err != nil {
			return fp.failAt(c.pos, c.text, KindMalformedSubstitution,
				fmt.Sprintf("%v in %s", err, c.pos.File))
		}
		fp.write(out)
	}
	return nil
}
