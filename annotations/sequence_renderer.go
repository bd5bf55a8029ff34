package annotations

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// SequenceInfo describes a tuple stream for rendering: the variables
// bound in each flwor.Tuple flowing through a clause, and how many
// tuples were observed (-1 if unknown/unbounded).
type SequenceInfo struct {
	Vars  []string
	Count int
}

// SequenceRenderer pretty-prints tuple streams the way janus-datalog's
// RelationRenderer pretty-prints Datalog relations: a bracketed
// variable list followed by a size-colored count.
type SequenceRenderer struct {
	useColor bool
}

// NewSequenceRenderer creates a renderer; useColor should come from
// detecting whether the destination is a terminal.
func NewSequenceRenderer(useColor bool) *SequenceRenderer {
	return &SequenceRenderer{useColor: useColor}
}

// RenderSequence renders a single tuple stream's shape.
func (r *SequenceRenderer) RenderSequence(seq SequenceInfo) string {
	varList := strings.Join(seq.Vars, " ")

	if r.useColor {
		head := fmt.Sprintf("%s%s%s", color.BlueString("Sequence(["), color.CyanString(varList), color.BlueString("]"))
		if seq.Count < 0 {
			return head + color.BlueString(")")
		}
		return fmt.Sprintf("%s%s%s%s", head, color.BlueString(", "), r.colorizeCount("tuples", seq.Count), color.BlueString(")"))
	}

	if seq.Count < 0 {
		return fmt.Sprintf("Sequence([%s])", varList)
	}
	return fmt.Sprintf("Sequence([%s], %s tuples)", varList, humanize.Comma(int64(seq.Count)))
}

// colorizeCount formats a count using humanize for readability on
// large numbers, color-coded by magnitude the way janus-datalog colors
// relation sizes (green small, yellow medium, red large or zero).
func (r *SequenceRenderer) colorizeCount(label string, count int) string {
	text := fmt.Sprintf("%s %s", humanize.Comma(int64(count)), label)
	if !r.useColor {
		return text
	}
	switch {
	case count == 0:
		return color.RedString(text)
	case count < 100:
		return color.GreenString(text)
	case count < 10000:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}

// RenderGroupBy renders a group-by clause's fan-in: N input tuples
// collapsed to M groups.
func (r *SequenceRenderer) RenderGroupBy(vars []string, inputCount, groupCount int) string {
	in := r.RenderSequence(SequenceInfo{Vars: vars, Count: inputCount})
	arrow := " → "
	if r.useColor {
		arrow = color.YellowString(" → ")
	}
	return fmt.Sprintf("%s%s%s groups", in, arrow, r.colorizeCount("", groupCount))
}

// RenderOrderBy renders an order-by clause's pass-through count,
// flagging the sort as expensive once the tuple count crosses a
// threshold worth calling out (matching janus-datalog's explosive-join
// callout in output.go).
func (r *SequenceRenderer) RenderOrderBy(vars []string, count int, descending bool) string {
	dir := "ascending"
	if descending {
		dir = "descending"
	}
	seq := r.RenderSequence(SequenceInfo{Vars: vars, Count: count})
	if count > 100000 {
		warn := "⚠️"
		if r.useColor {
			warn = color.YellowString(warn)
		}
		return fmt.Sprintf("%s sorted %s %s", seq, dir, warn)
	}
	return fmt.Sprintf("%s sorted %s", seq, dir)
}
