package carstate

// GearRegistry maps the raw selector codes of one vehicle variant to the
// dictionary's semantic labels. It comes from the static message-definition
// database and never changes at runtime.
type GearRegistry struct {
	labels map[int64]string
}

func NewGearRegistry(labels map[int64]string) *GearRegistry {
	m := make(map[int64]string, len(labels))
	for k, v := range labels {
		m[k] = v
	}
	return &GearRegistry{labels: m}
}

// Label resolves a raw selector code. Codes outside the dictionary report
// ok=false; that is a degradation, not an error.
func (r *GearRegistry) Label(code int64) (string, bool) {
	if r == nil {
		return "", false
	}
	l, ok := r.labels[code]
	return l, ok
}

// ParseGear maps a dictionary label to a Gear. Labels outside the known set
// decode to GearUnknown.
func ParseGear(label string) Gear {
	switch label {
	case "P":
		return GearPark
	case "R":
		return GearReverse
	case "N":
		return GearNeutral
	case "D":
		return GearDrive
	case "S":
		return GearSport
	case "L":
		return GearLow
	case "B":
		return GearBrake
	case "E":
		return GearEco
	case "T":
		return GearManualOverride
	default:
		return GearUnknown
	}
}
