// Package strength scores passwords and estimates brute-force crack time.
//
// Scoring is a simple additive rule: one point for a length of at least
// eight characters and one point for each character class present
// (uppercase, lowercase, digit, symbol). Crack time is derived from the
// size of the character classes actually used and an assumed attacker
// throughput, see Estimator.
package strength

import "unicode/utf8"

// Feedback buckets a score for display.
type Feedback int

const (
	FeedbackEmpty Feedback = iota
	FeedbackWeak
	FeedbackMedium
	FeedbackStrong
)

func (f Feedback) String() string {
	switch f {
	case FeedbackWeak:
		return "Weak: Add more character types and length."
	case FeedbackMedium:
		return "Medium: Add more variety."
	case FeedbackStrong:
		return "Strong password!"
	default:
		return "Enter a password."
	}
}

// MaxScore is the best possible score.
const MaxScore = 5

// Result is the outcome of Score.
type Result struct {
	Score    int
	Feedback Feedback
}

// Percent is the score as a 0..100 fill level for a strength bar.
func (r Result) Percent() int {
	return r.Score * 100 / MaxScore
}

type classes struct {
	upper, lower, digit, symbol bool
}

func classify(password string) classes {
	var c classes
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= 'a' && r <= 'z':
			c.lower = true
		case r >= '0' && r <= '9':
			c.digit = true
		default:
			c.symbol = true
		}
	}
	return c
}

// Score rates password on a 0..MaxScore scale. The empty password always
// scores 0 with FeedbackEmpty.
func Score(password string) Result {
	if password == "" {
		return Result{Score: 0, Feedback: FeedbackEmpty}
	}

	score := 0
	if utf8.RuneCountInString(password) >= 8 {
		score++
	}

	c := classify(password)
	for _, present := range []bool{c.upper, c.lower, c.digit, c.symbol} {
		if present {
			score++
		}
	}

	var fb Feedback
	switch {
	case score <= 2:
		fb = FeedbackWeak
	case score == 3:
		fb = FeedbackMedium
	default:
		fb = FeedbackStrong
	}
	return Result{Score: score, Feedback: fb}
}
