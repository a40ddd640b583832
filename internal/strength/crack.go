package strength

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// DefaultGuessesPerSecond is the assumed attacker throughput. It is a
// conservative offline-attack figure and can be overridden per Estimator.
const DefaultGuessesPerSecond = 1e10

// Class sizes counted toward the effective charset.
const (
	UpperSize  = 26
	LowerSize  = 26
	DigitSize  = 10
	SymbolSize = 33
)

// Unit is the display unit of a CrackTime.
type Unit int

const (
	Unknown Unit = iota
	Seconds
	Minutes
	Hours
	Days
	Years
	Centuries
)

var unitNames = map[Unit]string{
	Seconds:   "seconds",
	Minutes:   "minutes",
	Hours:     "hours",
	Days:      "days",
	Years:     "years",
	Centuries: "centuries",
}

func (u Unit) String() string {
	if n, ok := unitNames[u]; ok {
		return n
	}
	return "unknown"
}

// Bucket upper bounds in seconds.
const (
	secondsPerMinute  = 60
	secondsPerHour    = 3600
	secondsPerDay     = 86400
	secondsPerYear    = 31536000
	secondsPerCentury = 3153600000
)

// largeValue is where String switches to exponent notation.
const largeValue = 1e9

// CrackTime is an estimated brute-force duration expressed in the largest
// sensible unit.
type CrackTime struct {
	Seconds float64
	Value   float64
	Unit    Unit
	// Overflow is set when the keyspace exceeds float64. Seconds is then
	// +Inf and Value holds the largest representable duration.
	Overflow bool
}

// String renders "12.34 days", "3.17e+12 centuries" for very large values,
// "> 5.70e+288 centuries" on overflow, or "N/A" when the estimate is Unknown.
func (c CrackTime) String() string {
	switch {
	case c.Unit == Unknown:
		return "N/A"
	case c.Overflow:
		return fmt.Sprintf("> %.2e %s", c.Value, c.Unit)
	case c.Value >= largeValue:
		return fmt.Sprintf("%.2e %s", c.Value, c.Unit)
	}
	return fmt.Sprintf("%.2f %s", c.Value, c.Unit)
}

// CharsetSize sums the sizes of the character classes present in password.
func CharsetSize(password string) int {
	c := classify(password)
	size := 0
	if c.upper {
		size += UpperSize
	}
	if c.lower {
		size += LowerSize
	}
	if c.digit {
		size += DigitSize
	}
	if c.symbol {
		size += SymbolSize
	}
	return size
}

// Estimator computes crack times for a given attacker throughput.
type Estimator struct {
	GuessesPerSecond float64
}

// NewEstimator returns an Estimator; a non-positive gps falls back to
// DefaultGuessesPerSecond.
func NewEstimator(gps float64) *Estimator {
	if gps <= 0 {
		gps = DefaultGuessesPerSecond
	}
	return &Estimator{GuessesPerSecond: gps}
}

// BruteForceTime estimates how long exhausting the keyspace of password
// takes. An empty password yields an Unknown CrackTime.
func (e *Estimator) BruteForceTime(password string) CrackTime {
	size := CharsetSize(password)
	if size == 0 {
		return CrackTime{Unit: Unknown}
	}

	gps := e.GuessesPerSecond
	if gps <= 0 {
		gps = DefaultGuessesPerSecond
	}

	keyspace := math.Pow(float64(size), float64(utf8.RuneCountInString(password)))
	seconds := keyspace / gps
	if !math.IsInf(seconds, 1) {
		return bucket(seconds)
	}

	bound := math.MaxFloat64 / gps
	if math.IsInf(bound, 1) {
		bound = math.MaxFloat64
	}
	ct := bucket(bound)
	ct.Seconds = math.Inf(1)
	ct.Overflow = true
	return ct
}

// BruteForceTime uses DefaultGuessesPerSecond.
func BruteForceTime(password string) CrackTime {
	return NewEstimator(DefaultGuessesPerSecond).BruteForceTime(password)
}

func bucket(seconds float64) CrackTime {
	ct := CrackTime{Seconds: seconds}
	switch {
	case seconds < secondsPerMinute:
		ct.Value, ct.Unit = seconds, Seconds
	case seconds < secondsPerHour:
		ct.Value, ct.Unit = seconds/secondsPerMinute, Minutes
	case seconds < secondsPerDay:
		ct.Value, ct.Unit = seconds/secondsPerHour, Hours
	case seconds < secondsPerYear:
		ct.Value, ct.Unit = seconds/secondsPerDay, Days
	case seconds < secondsPerCentury:
		ct.Value, ct.Unit = seconds/secondsPerYear, Years
	default:
		ct.Value, ct.Unit = seconds/secondsPerCentury, Centuries
	}
	return ct
}
