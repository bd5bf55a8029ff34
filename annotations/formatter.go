package annotations

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// OutputFormatter formats events for human-readable display, following
// janus-datalog's OutputFormatter line-per-event console format.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
	renderer *SequenceRenderer
}

// NewOutputFormatter creates a formatter with color support detection.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f.Fd())
	}
	return &OutputFormatter{
		useColor: useColor,
		writer:   w,
		renderer: NewSequenceRenderer(useColor),
	}
}

// Handle implements Handler, printing each event as it occurs.
func (f *OutputFormatter) Handle(event Event) {
	output := f.Format(event)
	if output != "" {
		fmt.Fprintln(f.writer, output)
	}
}

// Format converts an event to a human-readable line.
func (f *OutputFormatter) Format(event Event) string {
	latency := f.formatLatency(event.Latency)

	switch event.Name {
	case QueryInvoked:
		return fmt.Sprintf("%s query started", f.colorize("===", color.FgGreen))

	case QueryComplete:
		return fmt.Sprintf("%s %s query completed with %s",
			latency,
			f.colorize("===", color.FgGreen),
			f.colorizeCount("items", intData(event.Data, "item.count")))

	case ClauseBegin:
		return fmt.Sprintf("%s clause %s begin", latency, event.Data["clause.kind"])

	case ClauseComplete:
		vars, _ := event.Data["tuple.vars"].([]string)
		return fmt.Sprintf("%s clause %s complete with %s",
			latency,
			event.Data["clause.kind"],
			f.renderer.RenderSequence(SequenceInfo{Vars: vars, Count: intData(event.Data, "tuple.count")}))

	case IteratorOpened:
		return fmt.Sprintf("%s opened %s (%s)", latency, event.Data["iterator.kind"], event.Data["execution.kind"])

	case IteratorClosed:
		return fmt.Sprintf("%s closed %s after %s",
			latency,
			event.Data["iterator.kind"],
			f.colorizeCount("items", intData(event.Data, "item.count")))

	case GroupByExecuted:
		vars, _ := event.Data["tuple.vars"].([]string)
		return fmt.Sprintf("%s %s", latency,
			f.renderer.RenderGroupBy(vars, intData(event.Data, "input.count"), intData(event.Data, "group.count")))

	case OrderByExecuted:
		vars, _ := event.Data["tuple.vars"].([]string)
		descending, _ := event.Data["descending"].(bool)
		return fmt.Sprintf("%s %s", latency,
			f.renderer.RenderOrderBy(vars, intData(event.Data, "tuple.count"), descending))

	case FunctionResolved:
		return fmt.Sprintf("%s resolved %s#%v", latency, event.Data["function.name"], event.Data["function.arity"])

	case FunctionInvoked:
		return fmt.Sprintf("%s invoked %s#%v", latency, event.Data["function.name"], event.Data["function.arity"])

	case ErrorParse, ErrorTyping, ErrorRuntime:
		return fmt.Sprintf("%s %s %v", latency, f.colorize("✗", color.FgRed), event.Data["error"])

	default:
		return fmt.Sprintf("%s %s", latency, event.Name)
	}
}

// intData reads an int out of an event's data map, tolerating a
// missing or mistyped key (annotation data is best-effort, never load
// bearing for query correctness).
func intData(data map[string]interface{}, key string) int {
	if v, ok := data[key].(int); ok {
		return v
	}
	return 0
}

// formatLatency formats a duration as [XXXms] or [XXXµs] with color
// coding by magnitude.
func (f *OutputFormatter) formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		s := fmt.Sprintf("[%dµs]", d.Microseconds())
		if !f.useColor {
			return s
		}
		return color.GreenString(s)
	}

	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("[%.1fms]", ms)
	if !f.useColor {
		return s
	}
	switch {
	case ms < 50:
		return color.GreenString(s)
	case ms < 200:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

// colorizeCount formats a count with a label, color-coded by type.
func (f *OutputFormatter) colorizeCount(label string, count int) string {
	text := fmt.Sprintf("%d %s", count, label)
	if !f.useColor {
		return text
	}
	switch strings.ToLower(label) {
	case "items", "tuples":
		return color.MagentaString(text)
	default:
		return text
	}
}

// colorize applies color if enabled.
func (f *OutputFormatter) colorize(text string, attrs ...color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

// ConsoleHandler creates a handler that prints formatted events to stdout.
func ConsoleHandler() Handler {
	formatter := NewOutputFormatter(os.Stdout)
	return func(event Event) {
		formatter.Handle(event)
	}
}

// isTerminal reports whether fd looks like stdout or stderr. A real
// terminal-capability check belongs to golang.org/x/term; this mirrors
// a simplified stand-in.
func isTerminal(fd uintptr) bool {
	return fd == uintptr(1) || fd == uintptr(2)
}
