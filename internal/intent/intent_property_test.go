package intent

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Classification is a pure function: identical input always yields the
// identical intent, regardless of how often or in what order it runs.
func TestProperty_ClassifyIsPure(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("repeated classification returns identical intents", prop.ForAll(
		func(text string) bool {
			first := Classify(text)
			for i := 0; i < 3; i++ {
				if Classify(text) != first {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("classification ignores letter case", prop.ForAll(
		func(text string) bool {
			return Classify(strings.ToUpper(text)) == Classify(strings.ToLower(text))
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Extraction never fails: any input produces a slot record, matched or
// not, and a missing field never blocks the others.
func TestProperty_ExtractorsAreTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	now := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)

	properties.Property("medication extraction is total", prop.ForAll(
		func(text string) bool {
			_ = ExtractMedicationSlots(text)
			return true
		},
		gen.AnyString(),
	))

	properties.Property("appointment extraction is total", prop.ForAll(
		func(text string) bool {
			_ = ExtractAppointmentSlots(text, now)
			return true
		},
		gen.AnyString(),
	))

	properties.Property("timer extraction is total and never negative", prop.ForAll(
		func(text string) bool {
			slots := ExtractTimerSlots(text)
			return slots.Duration >= 0
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// FormatTime round-trips: parsing the rendered HH:MM:SS back into
// seconds returns the original value for any non-negative input.
func TestProperty_FormatTimeRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("parse(format(s)) == s for s in one day", prop.ForAll(
		func(seconds int) bool {
			if seconds < 0 || seconds >= 86400 {
				return true
			}
			formatted := FormatTime(seconds)
			parts := strings.Split(formatted, ":")
			if len(parts) != 3 {
				return false
			}
			h, _ := strconv.Atoi(parts[0])
			m, _ := strconv.Atoi(parts[1])
			s, _ := strconv.Atoi(parts[2])
			return h*3600+m*60+s == seconds
		},
		gen.IntRange(0, 86399),
	))

	properties.Property("formatting is idempotent over the parsed value", prop.ForAll(
		func(seconds int) bool {
			formatted := FormatTime(seconds)
			parts := strings.Split(formatted, ":")
			h, _ := strconv.Atoi(parts[0])
			m, _ := strconv.Atoi(parts[1])
			s, _ := strconv.Atoi(parts[2])
			return FormatTime(h*3600+m*60+s) == formatted
		},
		gen.IntRange(0, 86399),
	))

	properties.TestingRun(t)
}

// "next <weekday>" always resolves one to seven days ahead, never today
// or in the past.
func TestProperty_NextWeekdayStrictlyFuture(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	weekdays := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

	properties.Property("offset is always in [1, 7]", prop.ForAll(
		func(dayIndex int, nowOffset int) bool {
			now := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, nowOffset)
			slots := ExtractAppointmentSlots("see dr smith next "+weekdays[dayIndex], now)

			resolved, err := time.Parse("2006-01-02", slots.Date)
			if err != nil {
				return false
			}
			days := int(resolved.Sub(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)).Hours() / 24)
			return days >= 1 && days <= 7 && resolved.Weekday() == time.Weekday(dayIndex)
		},
		gen.IntRange(0, 6),
		gen.IntRange(0, 364),
	))

	properties.TestingRun(t)
}
