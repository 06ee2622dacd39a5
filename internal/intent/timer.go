package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimerSlots is the structured result of timer slot extraction. Duration
// is in seconds; zero means no duration phrase was found. Name falls back
// to a generated default ("5 Minute Timer") when no explicit name is given.
type TimerSlots struct {
	Duration int
	Name     string
}

// Duration cascade: three equivalent phrasings, first match wins.
var timerDurationExtractors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)set (?:a )?timer for (\d+) (minute|minutes|hour|hours|second|seconds)`),
	regexp.MustCompile(`(?i)start (?:a )?timer for (\d+) (minute|minutes|hour|hours|second|seconds)`),
	regexp.MustCompile(`(?i)(\d+) (minute|minutes|hour|hours|second|seconds) timer`),
}

var timerNamePattern = regexp.MustCompile(`(?i)(?:called|named|for)\s+(.+?)(?:$|\s+for\b|[.,])`)

// ExtractTimerSlots pulls a duration and a name out of free text. The
// matched duration phrase is cut out of the text before the name pattern
// runs, so "for 5 minutes" is never mistaken for a timer name. Name
// casing is preserved from the original input. The patterns are
// case-insensitive, so matching runs on the original text directly;
// lowering first would desync the match indices for runes whose case
// pair differs in byte length.
func ExtractTimerSlots(text string) TimerSlots {
	var slots TimerSlots

	var amount int
	var unit string
	remainder := text

	for _, p := range timerDurationExtractors {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, _ = strconv.Atoi(m[1])
		unit = strings.ToLower(m[2])

		if loc := p.FindStringIndex(text); loc != nil {
			remainder = text[:loc[0]] + text[loc[1]:]
		}
		break
	}

	if unit == "" {
		return slots
	}

	switch {
	case strings.HasPrefix(unit, "hour"):
		slots.Duration = amount * 3600
	case strings.HasPrefix(unit, "minute"):
		slots.Duration = amount * 60
	case strings.HasPrefix(unit, "second"):
		slots.Duration = amount
	}

	if m := timerNamePattern.FindStringSubmatch(remainder); m != nil {
		slots.Name = strings.TrimSpace(m[1])
	}
	if slots.Name == "" {
		slots.Name = defaultTimerName(amount, unit)
	}

	return slots
}

func defaultTimerName(amount int, unit string) string {
	var label string
	switch {
	case strings.HasPrefix(unit, "hour"):
		label = "Hour"
	case strings.HasPrefix(unit, "minute"):
		label = "Minute"
	default:
		label = "Second"
	}
	return fmt.Sprintf("%d %s Timer", amount, label)
}
