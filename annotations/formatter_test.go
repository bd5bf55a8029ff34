package annotations

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newPlainFormatter(buf *bytes.Buffer) *OutputFormatter {
	// Constructed directly (not via NewOutputFormatter) so tests don't
	// depend on isTerminal's fd-based detection against a bytes.Buffer.
	return &OutputFormatter{writer: buf, useColor: false, renderer: NewSequenceRenderer(false)}
}

func TestFormatQueryInvoked(t *testing.T) {
	f := newPlainFormatter(&bytes.Buffer{})
	out := f.Format(Event{Name: QueryInvoked})
	assert.Contains(t, out, "query started")
}

func TestFormatClauseCompleteIncludesSequenceShape(t *testing.T) {
	f := newPlainFormatter(&bytes.Buffer{})
	out := f.Format(Event{
		Name:    ClauseComplete,
		Latency: 2 * time.Millisecond,
		Data: map[string]interface{}{
			"clause.kind": "where",
			"tuple.vars":  []string{"x", "y"},
			"tuple.count": 3,
		},
	})
	assert.Contains(t, out, "Sequence([x y]")
	assert.Contains(t, out, "3 tuples")
}

func TestFormatLatencySwitchesUnitAtMillisecond(t *testing.T) {
	f := newPlainFormatter(&bytes.Buffer{})
	assert.Contains(t, f.formatLatency(500*time.Microsecond), "µs]")
	assert.Contains(t, f.formatLatency(5*time.Millisecond), "ms]")
}

func TestFormatErrorEvent(t *testing.T) {
	f := newPlainFormatter(&bytes.Buffer{})
	out := f.Format(Event{Name: ErrorRuntime, Data: map[string]interface{}{"error": "boom"}})
	assert.Contains(t, out, "boom")
}

func TestHandleWritesNonEmptyLine(t *testing.T) {
	buf := &bytes.Buffer{}
	f := newPlainFormatter(buf)
	f.Handle(Event{Name: QueryInvoked})
	assert.Contains(t, buf.String(), "query started")
}

func TestHandleFormatsUnknownEventNameByName(t *testing.T) {
	buf := &bytes.Buffer{}
	f := newPlainFormatter(buf)
	f.Handle(Event{Name: "some/custom-event"})
	assert.Contains(t, buf.String(), "some/custom-event")
}
