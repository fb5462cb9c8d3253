package preproc

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// handleInsert queues "insert <macro> <section> [priority] [args...]".
func (fp *fileParser) handleInsert(_ context.Context, l *line) error {
	args := l.args()
	macro, name := args[0], args[1]

	priority := defaultPriority
	if len(args) > 2 {
		p, err := strconv.ParseFloat(args[2], 64)
		if err != nil || math.IsNaN(p) {
			fp.note("bad priority value")
			fp.write(l.raw)
			return fp.fail(l, KindInvalidArgument, fmt.Sprintf("bad priority value %q in %s", args[2], fp.name))
		}
		priority = p
	}

	var callArgs []string
	if len(args) > 3 {
		callArgs = append([]string(nil), args[3:]...)
	}

	entry := &pendingInsertion{priority: priority, macro: macro, args: callArgs, pos: l.pos}
	if closed := fp.st.sections.insert(name, entry); closed != nil {
		fp.note("found insert directive after section directive in: %s", fp.name)
		fp.note("section directive was in: %s", closed.closedAt)
		return fp.fail(l, KindSectionAlreadyClosed,
			fmt.Sprintf("insert into section %q after it was flushed at %s", name, closed.closedAt))
	}

	fp.note("found insert directive")
	fp.echo(l)
	return nil
}

// handleSection flushes "section <name> [args...]" and consumes the
// captured splice blocks whatever the outcome.
func (fp *fileParser) handleSection(_ context.Context, l *line) error {
	defer fp.splices.reset()

	args := l.args()
	name := args[0]
	shared := strings.Join(args[1:], " ")

	res := fp.st.sections.close(name, l.pos)
	if res.previous != nil {
		return fp.fail(l, KindSectionAlreadyClosed,
			fmt.Sprintf("section %q was already flushed at %s", name, res.previous.closedAt))
	}

	if !res.opened {
		fp.warn(l, KindEmptySection, fmt.Sprintf("no inserts for section directive: %s", name))
		fp.note("WARNING, nothing found for section directive")
		fp.echo(l)
		if empty := fp.splices[spliceEmpty]; len(empty) > 0 {
			fp.note("empty splice section")
			for _, c := range empty {
				fp.write(c.text)
			}
		}
		return nil
	}

	fp.note("found section directive")
	fp.echo(l)
	for _, c := range fp.splices[spliceBefore] {
		fp.write(c.text)
	}

	for k, e := range res.entries {
		fp.note("section: %s inserting macro: %s", name, e.macro)
		fp.write(callLine(e, shared))
		if k < len(res.entries)-1 {
			if err := fp.emitBlock(fp.splices[spliceBetween], k+1); err != nil {
				return err
			}
		}
	}
	return fp.emitBlock(fp.splices[spliceAfter], len(res.entries)+1)
}

// callLine renders one queued macro call. Explicit insert arguments win
// over the section's shared arguments.
func callLine(e *pendingInsertion, shared string) string {
	switch {
	case len(e.args) > 0:
		return "\t" + e.macro + " " + strings.Join(e.args, ", ") + "\n"
	case shared != "":
		return "\t" + e.macro + " " + shared + "\n"
	default:
		return "\t" + e.macro + "\n"
	}
}
