package bus

// Table holds the decoded signal values one segment produced over a single
// control cycle: message name -> signal name -> physical value. A message
// that arrived more than once keeps the values of its latest frame; the
// per-message frame count is tracked separately so a consumer can tell
// "arrived at all this cycle" apart from the value itself.
type Table struct {
	values map[string]map[string]float64
	counts map[string]int
}

func NewTable() *Table {
	return &Table{
		values: map[string]map[string]float64{},
		counts: map[string]int{},
	}
}

// Set records one signal value, replacing any value an earlier frame of the
// same message wrote this cycle.
func (t *Table) Set(message, signal string, value float64) {
	m, ok := t.values[message]
	if !ok {
		m = map[string]float64{}
		t.values[message] = m
	}
	m[signal] = value
}

// MarkFrame bumps the frame count for a message. Called once per received
// frame, after its signals have been folded in.
func (t *Table) MarkFrame(message string) {
	t.counts[message]++
}

// Signal returns the latest value seen for a signal this cycle, or zero when
// the message has not arrived. Missing data never fails here; staleness is
// the watchdog's concern.
func (t *Table) Signal(message, signal string) float64 {
	return t.values[message][signal]
}

// FrameCount reports how many frames of a message arrived this cycle.
func (t *Table) FrameCount(message string) int {
	return t.counts[message]
}
