package bus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// SignalDef describes how one signal is packed into its message payload.
type SignalDef struct {
	Name      string
	StartBit  int
	BitLength int
	Signed    bool
	Factor    float64
	Offset    float64
}

// MessageDef describes one periodic message of a segment's database.
type MessageDef struct {
	ID      uint32
	Name    string
	DLC     int
	CycleMS int
	Signals []SignalDef
}

// RateHz converts the nominal cycle time to an update rate. Messages with no
// declared cycle report 0.
func (m *MessageDef) RateHz() float64 {
	if m.CycleMS <= 0 {
		return 0
	}
	return 1000.0 / float64(m.CycleMS)
}

// Database is the static signal database for one bus segment, loaded once at
// startup from a CSV export of the message dictionary.
type Database struct {
	ByID   map[uint32]*MessageDef
	ByName map[string]*MessageDef
}

func (d *Database) MessageNames() []string {
	out := make([]string, 0, len(d.ByName))
	for k := range d.ByName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (d *Database) MessageByName(name string) (*MessageDef, error) {
	md, ok := d.ByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown message %q (available: %v)", name, d.MessageNames())
	}
	return md, nil
}

// LoadDatabase reads a signal database CSV. Required columns: message,
// frame_id, cycle_ms, dlc, signal, start_bit, bit_length, signed, factor,
// offset. Only little-endian packing is supported, matching the vehicles
// this runs on.
func LoadDatabase(csvPath string) (*Database, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	req := []string{
		"message", "frame_id", "cycle_ms", "dlc",
		"signal", "start_bit", "bit_length", "signed", "factor", "offset",
	}
	for _, k := range req {
		if _, ok := idx[k]; !ok {
			return nil, fmt.Errorf("signal database missing required column: %q", k)
		}
	}

	db := &Database{
		ByID:   map[uint32]*MessageDef{},
		ByName: map[string]*MessageDef{},
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		frameID, err := parseHexOrDecUint32(rec[idx["frame_id"]])
		if err != nil {
			return nil, fmt.Errorf("invalid frame_id %q: %w", rec[idx["frame_id"]], err)
		}

		msgName := strings.TrimSpace(rec[idx["message"]])
		cycleMS := mustInt(rec[idx["cycle_ms"]])
		dlc := mustInt(rec[idx["dlc"]])

		sig := SignalDef{
			Name:      strings.TrimSpace(rec[idx["signal"]]),
			StartBit:  mustInt(rec[idx["start_bit"]]),
			BitLength: mustInt(rec[idx["bit_length"]]),
			Signed:    mustBool(rec[idx["signed"]]),
			Factor:    mustFloat(rec[idx["factor"]]),
			Offset:    mustFloat(rec[idx["offset"]]),
		}

		if sig.BitLength <= 0 || sig.BitLength > 64 {
			return nil, fmt.Errorf("message %s signal %s: invalid bit_length %d", msgName, sig.Name, sig.BitLength)
		}
		if sig.Factor == 0 {
			sig.Factor = 1
		}
		if dlc <= 0 || dlc > 8 {
			return nil, fmt.Errorf("message %s (0x%X): invalid dlc %d", msgName, frameID, dlc)
		}

		md, ok := db.ByID[frameID]
		if !ok {
			md = &MessageDef{
				ID:      frameID,
				Name:    msgName,
				DLC:     dlc,
				CycleMS: cycleMS,
			}
			db.ByID[frameID] = md
			db.ByName[msgName] = md
		}

		if md.DLC != dlc {
			return nil, fmt.Errorf("message %s (0x%X) has inconsistent DLC (%d vs %d)", msgName, frameID, md.DLC, dlc)
		}

		md.Signals = append(md.Signals, sig)
	}

	for _, md := range db.ByID {
		sort.Slice(md.Signals, func(i, j int) bool { return md.Signals[i].StartBit < md.Signals[j].StartBit })
	}

	return db, nil
}

func parseHexOrDecUint32(s string) (uint32, error) {
	ss := strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(ss, "0x") || strings.HasPrefix(ss, "0X") {
		base = 16
		ss = ss[2:]
	}
	u, err := strconv.ParseUint(ss, base, 32)
	if err != nil {
		return 0, err
	}
	return uint32(u), nil
}

func mustInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func mustBool(s string) bool {
	ss := strings.TrimSpace(strings.ToLower(s))
	return ss == "true" || ss == "1" || ss == "yes"
}
