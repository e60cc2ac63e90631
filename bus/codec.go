package bus

import (
	"math"

	"go.einride.tech/can"
)

// DecodeFrame turns a received frame into physical signal values using the
// segment's database. Unknown frame IDs return ok=false; they are normal on
// a shared bus and are simply not part of this segment's requirements.
func (d *Database) DecodeFrame(f can.Frame) (name string, values map[string]float64, ok bool) {
	md, found := d.ByID[f.ID]
	if !found {
		return "", nil, false
	}
	if int(f.Length) < md.DLC {
		return "", nil, false
	}

	var payload uint64
	for i := 0; i < md.DLC && i < 8; i++ {
		payload |= uint64(f.Data[i]) << (8 * i)
	}

	values = make(map[string]float64, len(md.Signals))
	for _, s := range md.Signals {
		u := extractBits(payload, s.StartBit, s.BitLength)
		raw := signExtend(u, s.BitLength, s.Signed)
		values[s.Name] = float64(raw)*s.Factor + s.Offset
	}
	return md.Name, values, true
}

// EncodeFrame builds a transmit-ready frame for a named message. Signals not
// present in values encode as zero. Used for the cruise-button cancel
// command the loop runner can issue.
func (d *Database) EncodeFrame(message string, values map[string]float64) (can.Frame, error) {
	md, err := d.MessageByName(message)
	if err != nil {
		return can.Frame{}, err
	}

	var payload uint64
	for _, s := range md.Signals {
		v := values[s.Name]
		raw := int64(math.Round((v - s.Offset) / s.Factor))
		raw = clampRaw(raw, s.BitLength, s.Signed)
		payload = insertBits(payload, s.StartBit, s.BitLength, toTwosComplement(raw, s.BitLength))
	}

	var f can.Frame
	f.ID = md.ID
	f.Length = uint8(md.DLC)
	for i := 0; i < md.DLC; i++ {
		f.Data[i] = byte((payload >> (8 * i)) & 0xFF)
	}
	return f, nil
}
