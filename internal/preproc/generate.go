package preproc

import (
	"context"
	"fmt"
	"strconv"
)

// handleGenerate captures the block up to the end marker and emits it once
// for every counter value in [from, to].
func (fp *fileParser) handleGenerate(ctx context.Context, l *line) error {
	args := l.args()
	from, errFrom := strconv.Atoi(args[0])
	to, errTo := strconv.Atoi(args[1])
	if errFrom != nil || errTo != nil {
		fp.note("bad generate directive count")
		fp.echo(l)
		return fp.fail(l, KindInvalidArgument, fmt.Sprintf("bad generate directive count %q %q", args[0], args[1]))
	}

	fp.note("found generate directive")
	fp.echo(l)
	d, _ := lookupDirective(l.tokens[0])
	block, err := fp.capture(l, d)
	if err != nil {
		return err
	}

	if from > to {
		return nil
	}
	// Stop on to itself so a bound of math.MaxInt cannot wrap the counter.
	for i := from; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fp.emitBlock(block, i); err != nil {
			return err
		}
		if i == to {
			return nil
		}
	}
}
