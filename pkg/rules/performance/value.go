// Package performance validates submitted performance records against the
// discipline they belong to: the kind of value supplied, its bounds, the event date,
// team composition and duplicate submissions.
package performance

import (
	"strings"
	"time"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
)

const (
	MinTimeSeconds    = 0.01
	MaxTimeSeconds    = 86400.0
	MinDistanceMeters = 0.01
	MaxDistanceMeters = 10000.0

	// Values past these still save but are flagged for the user to confirm.
	FastTimeSeconds    = 1.0
	LongDistanceMeters = 1000.0
)

var (
	ErrNoValue                  = rules.NewViolation("", "A performance must provide a value or a medal")
	ErrTimedWithDistance        = rules.NewViolation("distanceMeters", "Timed disciplines cannot record a distance")
	ErrMeasuredWithTime         = rules.NewViolation("timeSeconds", "Measured disciplines cannot record a time")
	ErrTimedRequiresTime        = rules.NewViolation("timeSeconds", "Timed disciplines require a time or a medal")
	ErrMeasuredRequiresDistance = rules.NewViolation("distanceMeters", "Measured disciplines require a distance or a medal")
	ErrTimeOutOfRange           = rules.NewViolation("timeSeconds", "Time must be greater than 0.01 seconds and at most 86400 seconds")
	ErrDistanceOutOfRange       = rules.NewViolation("distanceMeters", "Distance must be greater than 0.01 meters and at most 10000 meters")
	ErrFutureDate               = rules.NewViolation("date", "Performance date cannot be in the future")

	WarnFastTime     = rules.NewViolation("timeSeconds", "Time is under 1 second, please confirm it is correct")
	WarnLongDistance = rules.NewViolation("distanceMeters", "Distance is over 1000 meters, please confirm it is correct")
)

// Candidate is the value-bearing part of a submitted performance.
type Candidate struct {
	TimeSeconds    *float64
	DistanceMeters *float64
	MedalID        *string
	Date           time.Time
}

// Result collects every error and warning found. Warnings never make a result
// invalid.
type Result struct {
	IsValid  bool              `json:"isValid"`
	Errors   []rules.Violation `json:"errors"`
	Warnings []rules.Violation `json:"warnings"`
}

func (r *Result) addError(v *rules.Violation) {
	r.Errors = append(r.Errors, *v)
}

func (r *Result) addWarning(v *rules.Violation) {
	r.Warnings = append(r.Warnings, *v)
}

// HasError reports whether v is among the errors.
func (r Result) HasError(v *rules.Violation) bool {
	for _, e := range r.Errors {
		if e == *v {
			return true
		}
	}
	return false
}

// HasWarning reports whether v is among the warnings.
func (r Result) HasWarning(v *rules.Violation) bool {
	for _, w := range r.Warnings {
		if w == *v {
			return true
		}
	}
	return false
}

// ValidateValue checks c against a discipline of the given kind. All checks run;
// nothing stops at the first failure. now fixes "today" for the date rule.
func ValidateValue(kind discipline.Kind, c Candidate, now time.Time) Result {
	res := Result{Errors: []rules.Violation{}, Warnings: []rules.Violation{}}

	hasTime := c.TimeSeconds != nil
	hasDistance := c.DistanceMeters != nil
	hasMedal := c.MedalID != nil && strings.TrimSpace(*c.MedalID) != ""

	if !hasTime && !hasDistance && !hasMedal {
		res.addError(ErrNoValue)
	}

	switch kind {
	case discipline.Timed:
		if hasDistance {
			res.addError(ErrTimedWithDistance)
		}
		if !hasTime && !hasMedal {
			res.addError(ErrTimedRequiresTime)
		}
	case discipline.Measured:
		if hasTime {
			res.addError(ErrMeasuredWithTime)
		}
		if !hasDistance && !hasMedal {
			res.addError(ErrMeasuredRequiresDistance)
		}
	}

	if hasTime {
		t := *c.TimeSeconds
		switch {
		case t <= MinTimeSeconds || t > MaxTimeSeconds:
			res.addError(ErrTimeOutOfRange)
		case t < FastTimeSeconds:
			res.addWarning(WarnFastTime)
		}
	}

	if hasDistance {
		d := *c.DistanceMeters
		switch {
		case d <= MinDistanceMeters || d > MaxDistanceMeters:
			res.addError(ErrDistanceOutOfRange)
		case d > LongDistanceMeters:
			res.addWarning(WarnLongDistance)
		}
	}

	if IsFutureDate(c.Date, now) {
		res.addError(ErrFutureDate)
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// EndOfDay is the last millisecond of now's calendar day in now's location.
func EndOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), now.Location())
}

func IsFutureDate(date, now time.Time) bool {
	return date.After(EndOfDay(now))
}
