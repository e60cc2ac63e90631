package carstate

// Cruise button codes carried by the steering-button message.
const (
	ButtonInit     int64 = 0
	ButtonUnpress  int64 = 1
	ButtonResAccel int64 = 2
	ButtonDecelSet int64 = 3
	ButtonMain     int64 = 5
	ButtonCancel   int64 = 6
)

// ButtonEvent is a press or release edge derived from two consecutive
// snapshots' button codes.
type ButtonEvent struct {
	Code    int64
	Pressed bool
}

// ButtonEvents derives the edge, if any, between the previous and current
// cycle's button codes. The init code never produces an edge (it is what
// the signal reads before the first real sample), and a transition to
// unpress is the release of the previous code.
func ButtonEvents(snap Snapshot) []ButtonEvent {
	if snap.ButtonCode == snap.PrevButtonCode || snap.PrevButtonCode == ButtonInit {
		return nil
	}
	if snap.ButtonCode == ButtonUnpress {
		return []ButtonEvent{{Code: snap.PrevButtonCode, Pressed: false}}
	}
	return []ButtonEvent{{Code: snap.ButtonCode, Pressed: true}}
}
