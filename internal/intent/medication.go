package intent

import (
	"regexp"
	"strings"
)

// MedicationSlots is the structured result of medication slot extraction.
// Fields that could not be extracted are left empty; the caller decides
// whether enough information exists to prefill a form.
type MedicationSlots struct {
	Name      string
	Dosage    string
	Frequency string
	TimeOfDay string
}

// Name cascade, tried in order; the first match wins.
var medicationNameExtractors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)remind me to take (\w+)`),
	regexp.MustCompile(`(?i)add (\w+) (?:\d+\s*mg|\d+\s*ml) (?:once|twice|three times) (?:daily|a day)`),
	regexp.MustCompile(`(?i)create medication (\w+)`),
	regexp.MustCompile(`(?i)add (\w+) to my medications`),
	regexp.MustCompile(`(?i)set reminder for (\w+)`),
}

var (
	medicationDosagePattern    = regexp.MustCompile(`(?i)(\d+\s*(?:mg|ml))`)
	medicationFrequencyPattern = regexp.MustCompile(`(?i)\b(once|twice|three times)\b`)
)

// canonicalFrequency maps the spoken multiplier onto the canonical
// frequency strings used by the backend's medication form.
func canonicalFrequency(times string) string {
	switch strings.ToLower(times) {
	case "once":
		return "Once daily"
	case "twice":
		return "Twice daily"
	case "three times":
		return "Three times daily"
	default:
		return ""
	}
}

// ExtractMedicationSlots pulls medication fields out of free text. Each
// field runs its own independent pattern cascade; a miss on one field
// never blocks extraction of the others, and extraction never fails.
func ExtractMedicationSlots(text string) MedicationSlots {
	msg := strings.ToLower(text)
	var slots MedicationSlots

	for _, p := range medicationNameExtractors {
		if m := p.FindStringSubmatch(msg); m != nil {
			slots.Name = m[1]
			break
		}
	}

	if m := medicationDosagePattern.FindStringSubmatch(msg); m != nil {
		slots.Dosage = strings.TrimSpace(m[1])
	}

	if m := medicationFrequencyPattern.FindStringSubmatch(msg); m != nil {
		slots.Frequency = canonicalFrequency(m[1])
	}

	// Time of day is whatever follows the first " at " token, verbatim.
	// The form accepts free text, so no time-format validation happens here.
	if idx := strings.Index(msg, " at "); idx >= 0 {
		slots.TimeOfDay = strings.TrimSpace(msg[idx+len(" at "):])
	}

	return slots
}
