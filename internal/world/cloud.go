package world

// Cloud is the kind of cloud hanging over a cell.
type Cloud uint8

const (
	CloudNone Cloud = iota
	CloudMist
	CloudFire
	CloudPoison
	CloudSteam
	CloudStorm
)

func (c Cloud) String() string {
	switch c {
	case CloudNone:
		return "none"
	case CloudMist:
		return "mist"
	case CloudFire:
		return "fire"
	case CloudPoison:
		return "poison"
	case CloudStorm:
		return "storm"
	case CloudSteam:
		return "steam"
	default:
		return "unknown"
	}
}

// Harmless reports whether standing in the cloud does no damage.
func (c Cloud) Harmless() bool {
	return c == CloudNone || c == CloudMist
}
