package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// AppointmentSlots is the structured result of appointment slot
// extraction. Date is "YYYY-MM-DD" and Time is 24-hour "HH:MM", matching
// the backend's appointment form; both are empty when not found.
type AppointmentSlots struct {
	DoctorName string
	Date       string
	Time       string
	Purpose    string
}

var (
	doctorNamePattern      = regexp.MustCompile(`(?i)(?:dr|doctor)\.?\s+(\w+)`)
	textualDatePattern     = regexp.MustCompile(`(?i)on\s+(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d+)(?:st|nd|rd|th)?`)
	numericDatePattern     = regexp.MustCompile(`(?i)on\s+(\d+)/(\d+)(?:/\d+)?`)
	relativeDatePattern    = regexp.MustCompile(`(?i)(tomorrow|next (monday|tuesday|wednesday|thursday|friday|saturday|sunday))`)
	clockTimePattern       = regexp.MustCompile(`(?i)at\s+(\d+(?::\d+)?\s*(?:am|pm))`)
	clockTimePartsPattern  = regexp.MustCompile(`(?i)(\d+)(?::(\d+))?\s*(am|pm)`)
	appointmentPurposePattern = regexp.MustCompile(`(?i)for\s+(?:a\s+|an\s+)?([a-z][a-z ]*)`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var weekdaysByName = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

// ExtractAppointmentSlots pulls appointment fields out of free text.
// The date is resolved by three alternative sub-parsers tried in order:
// textual "on Month Day", numeric "on M/D", then relative
// "tomorrow"/"next <weekday>". Fields are independent; a miss on one
// never blocks the others. The reference time is injected so resolution
// of relative dates is deterministic.
func ExtractAppointmentSlots(text string, now time.Time) AppointmentSlots {
	msg := strings.ToLower(text)
	var slots AppointmentSlots

	if m := doctorNamePattern.FindStringSubmatch(msg); m != nil {
		slots.DoctorName = m[1]
	}

	slots.Date = extractAppointmentDate(msg, now)

	if m := clockTimePattern.FindStringSubmatch(msg); m != nil {
		slots.Time = normalizeClockTime(m[1])
	}

	if m := appointmentPurposePattern.FindStringSubmatch(msg); m != nil {
		slots.Purpose = strings.TrimSpace(m[1])
	}

	return slots
}

func extractAppointmentDate(msg string, now time.Time) string {
	if m := textualDatePattern.FindStringSubmatch(msg); m != nil {
		month := monthsByName[m[1]]
		day, _ := strconv.Atoi(m[2])
		return resolveMonthDay(month, day, now).Format("2006-01-02")
	}

	if m := numericDatePattern.FindStringSubmatch(msg); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return resolveMonthDay(time.Month(month), day, now).Format("2006-01-02")
		}
		return ""
	}

	if m := relativeDatePattern.FindStringSubmatch(msg); m != nil {
		if m[1] == "tomorrow" {
			return now.AddDate(0, 0, 1).Format("2006-01-02")
		}
		target := weekdaysByName[m[2]]
		return nextWeekday(target, now).Format("2006-01-02")
	}

	return ""
}

// resolveMonthDay places a month/day on the current year; dates that have
// already passed roll over to the next year so an extracted appointment
// date is never in the past.
func resolveMonthDay(month time.Month, day int, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		d = d.AddDate(1, 0, 0)
	}
	return d
}

// nextWeekday returns the next occurrence of target strictly after now:
// asking for "next monday" on a Monday lands a full week ahead.
func nextWeekday(target time.Weekday, now time.Time) time.Time {
	days := (int(target) + 7 - int(now.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}

// normalizeClockTime converts "2pm", "2:30 pm", "11am" to 24-hour "HH:MM".
// Returns the input unchanged when it does not parse.
func normalizeClockTime(raw string) string {
	m := clockTimePartsPattern.FindStringSubmatch(raw)
	if m == nil {
		return strings.TrimSpace(raw)
	}

	hours, _ := strconv.Atoi(m[1])
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}
	period := strings.ToLower(m[3])

	if period == "pm" && hours < 12 {
		hours += 12
	} else if period == "am" && hours == 12 {
		hours = 0
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
