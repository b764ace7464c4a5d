package movement

// Mode selects the movement speed.
type Mode int

const (
	Walk Mode = iota
	Run
	Ride
	modeCount
)

func (m Mode) String() string {
	switch m {
	case Walk:
		return "walk"
	case Run:
		return "run"
	case Ride:
		return "ride"
	}
	return "unknown"
}

// Speeds holds world units per second for each Mode.
type Speeds [modeCount]float64

// Uniform returns Speeds with the same value for every mode.
func Uniform(v float64) Speeds {
	var s Speeds
	for i := range s {
		s[i] = v
	}
	return s
}

func (s Speeds) For(m Mode) float64 {
	if m < 0 || m >= modeCount {
		return s[Walk]
	}
	return s[m]
}
