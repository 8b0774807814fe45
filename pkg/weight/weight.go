// Package weight derives the carry-weight bar from the number of occupied
// slots. Every occupied slot weighs the same configured amount.
package weight

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type Tier int

const (
	TierNormal Tier = iota
	TierWarning
	TierAlert
)

func (t Tier) String() string {
	switch t {
	case TierWarning:
		return "warning"
	case TierAlert:
		return "alert"
	default:
		return "normal"
	}
}

const (
	AlertPercent   = 90
	WarningPercent = 70
)

// Bar colors, mirroring the HUD stylesheet.
var (
	AlertColor     = mustHex("#e74c3c")
	WarningColor   = mustHex("#f1c40f")
	GradientStart  = mustHex("#2ecc71")
	GradientFinish = mustHex("#27ae60")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

type Config struct {
	UnitWeight  float64
	MaxCapacity float64
	WarningTier bool
}

func DefaultConfig() Config {
	return Config{UnitWeight: 2, MaxCapacity: 64, WarningTier: true}
}

type State struct {
	Weight  float64
	Percent float64
	Tier    Tier
}

func Compute(occupied int, cfg Config) State {
	w := float64(occupied) * cfg.UnitWeight
	var percent float64
	if cfg.MaxCapacity > 0 {
		percent = math.Max(math.Min(w/cfg.MaxCapacity*100, 100), 0)
	}

	tier := TierNormal
	switch {
	case percent > AlertPercent:
		tier = TierAlert
	case cfg.WarningTier && percent > WarningPercent:
		tier = TierWarning
	}
	return State{Weight: w, Percent: percent, Tier: tier}
}

// FilledCells returns how many of width cells the bar fills.
func (s State) FilledCells(width int) int {
	n := int(math.Round(s.Percent / 100 * float64(width)))
	return min(max(n, 0), max(width, 0))
}

// Fill returns one color per filled cell of a bar width cells wide.
func Fill(s State, width int) []colorful.Color {
	n := s.FilledCells(width)
	cells := make([]colorful.Color, n)
	for i := range cells {
		switch s.Tier {
		case TierAlert:
			cells[i] = AlertColor
		case TierWarning:
			cells[i] = WarningColor
		default:
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			cells[i] = GradientStart.BlendLab(GradientFinish, t).Clamped()
		}
	}
	return cells
}

// Indicator keeps the last computed state.
type Indicator struct {
	cfg   Config
	state State
}

func NewIndicator(cfg Config) *Indicator {
	return &Indicator{cfg: cfg}
}

func (i *Indicator) Config() Config { return i.cfg }

func (i *Indicator) Update(occupied int) State {
	i.state = Compute(occupied, i.cfg)
	return i.state
}

func (i *Indicator) State() State { return i.state }
