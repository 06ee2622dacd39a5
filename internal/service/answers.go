package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/medassist/assistant-gateway/internal/intent"
	"github.com/medassist/assistant-gateway/internal/snapshot"
	"github.com/medassist/assistant-gateway/pkg/model"
)

// The local answer generator: pure functions from a snapshot to reply
// text. No I/O and no mutation; unanswerable questions bubble up so the
// engine can dispatch to the fallback responder.

const (
	dateLayout = "1/2/2006"
	timeLayout = "03:04 PM"
)

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func medicationsList(snap *snapshot.Snapshot) string {
	if len(snap.Medications) == 0 {
		return "You don't have any medications added yet. Would you like to add one now?"
	}

	var b strings.Builder
	b.WriteString("Here are your medications:\n\n")
	for _, med := range snap.Medications {
		fmt.Fprintf(&b, "• %s (%s) - %s, %s\n", med.Name, med.Dosage, med.Frequency, med.TimeOfDay)
		fmt.Fprintf(&b, "  Status: %s\n", med.Status)
	}
	return b.String()
}

// medicationStatusAnswer answers "did I take X" style messages from the
// cached status field. When no known medication is named the full list
// is returned so the user can see every status at once.
func medicationStatusAnswer(text string, snap *snapshot.Snapshot) string {
	if len(snap.Medications) == 0 {
		return "You don't have any medications added yet. Would you like to add one now?"
	}

	msg := strings.ToLower(text)
	for _, med := range snap.Medications {
		if strings.Contains(msg, strings.ToLower(med.Name)) {
			return fmt.Sprintf("%s is currently marked as %s.", med.Name, med.Status)
		}
	}
	return medicationsList(snap)
}

var (
	medicationNameQuestionPattern = regexp.MustCompile(`(?i)(\w+) medication`)
	whenToTakePattern             = regexp.MustCompile(`(?i)when (do i|should i) take (\w+)`)
	dosageQuestionPattern         = regexp.MustCompile(`(?i)what dosage (of|for) (\w+)`)
	amountQuestionPattern         = regexp.MustCompile(`(?i)how (many|much) (\w+) (do i|should i) take`)
)

// answerMedicationQuestion resolves a medication question against the
// snapshot. The second return is false when the question names no
// medication and is not a general listing request.
func answerMedicationQuestion(text string, snap *snapshot.Snapshot) (string, bool) {
	if len(snap.Medications) == 0 {
		return "You don't have any medications added yet. Would you like to add one now?", true
	}

	msg := strings.ToLower(text)

	var name string
	if m := medicationNameQuestionPattern.FindStringSubmatch(msg); m != nil {
		name = m[1]
	} else if m := whenToTakePattern.FindStringSubmatch(msg); m != nil {
		name = m[2]
	} else if m := dosageQuestionPattern.FindStringSubmatch(msg); m != nil {
		name = m[2]
	} else if m := amountQuestionPattern.FindStringSubmatch(msg); m != nil {
		name = m[2]
	}

	if name != "" {
		med := findMedication(snap.Medications, name)
		if med == nil {
			return fmt.Sprintf("I couldn't find any medication called %q in your records. Would you like to add it?", name), true
		}

		switch {
		case whenToTakePattern.MatchString(msg):
			return fmt.Sprintf("You should take %s %s at %s.", med.Name, strings.ToLower(med.Frequency), med.TimeOfDay), true
		case dosageQuestionPattern.MatchString(msg) || amountQuestionPattern.MatchString(msg):
			return fmt.Sprintf("The dosage for %s is %s.", med.Name, med.Dosage), true
		default:
			answer := fmt.Sprintf("%s (%s):\n- Take it %s at %s\n- Current status: %s",
				med.Name, med.Dosage, strings.ToLower(med.Frequency), med.TimeOfDay, med.Status)
			if med.Notes != nil && *med.Notes != "" {
				answer += fmt.Sprintf("\n- Notes: %s", *med.Notes)
			}
			return answer, true
		}
	}

	if strings.Contains(msg, "what medications") {
		return medicationsList(snap), true
	}

	return "", false
}

func findMedication(medications []model.Medication, name string) *model.Medication {
	for i := range medications {
		if strings.Contains(strings.ToLower(medications[i].Name), name) {
			return &medications[i]
		}
	}
	return nil
}

func appointmentsList(snap *snapshot.Snapshot) string {
	if len(snap.Appointments) == 0 {
		return "You don't have any appointments scheduled. Would you like to schedule one now?"
	}

	sorted := sortedAppointments(snap.Appointments)

	var b strings.Builder
	b.WriteString("Here are your upcoming appointments:\n\n")
	for _, appt := range sorted {
		if appt.Status != model.AppointmentStatusScheduled {
			continue
		}
		fmt.Fprintf(&b, "• %s at %s\n", appt.DateTime.Format(dateLayout), appt.DateTime.Format(timeLayout))
		fmt.Fprintf(&b, "  Dr. %s%s\n", appt.DoctorName, specialtySuffix(appt.Specialty))
		fmt.Fprintf(&b, "  Location: %s\n", appt.Location)
		if appt.Purpose != nil && *appt.Purpose != "" {
			fmt.Fprintf(&b, "  Purpose: %s\n", *appt.Purpose)
		}
		b.WriteString("\n")
	}
	return b.String()
}

var doctorQuestionPattern = regexp.MustCompile(`(?i)(doctor|dr) (\w+)`)

func answerAppointmentQuestion(text string, snap *snapshot.Snapshot, now time.Time) string {
	if len(snap.Appointments) == 0 {
		return "You don't have any appointments scheduled. Would you like to schedule one now?"
	}

	msg := strings.ToLower(text)
	upcoming := upcomingAppointments(snap.Appointments, now)

	if strings.Contains(msg, "next appointment") || strings.Contains(msg, "upcoming appointment") {
		if len(upcoming) == 0 {
			return "You don't have any upcoming appointments scheduled. Would you like to schedule one now?"
		}
		next := upcoming[0]
		return fmt.Sprintf("Your next appointment is on %s at %s with Dr. %s%s at %s%s.",
			next.DateTime.Format(dateLayout),
			next.DateTime.Format(timeLayout),
			next.DoctorName,
			specialtySuffix(next.Specialty),
			next.Location,
			purposeSuffix(next.Purpose),
		)
	}

	if m := doctorQuestionPattern.FindStringSubmatch(msg); m != nil {
		doctorName := m[2]
		for _, appt := range upcoming {
			if strings.Contains(strings.ToLower(appt.DoctorName), doctorName) {
				return fmt.Sprintf("Your next appointment with Dr. %s is on %s at %s at %s%s.",
					appt.DoctorName,
					appt.DateTime.Format(dateLayout),
					appt.DateTime.Format(timeLayout),
					appt.Location,
					purposeSuffix(appt.Purpose),
				)
			}
		}
		return fmt.Sprintf("You don't have any upcoming appointments with Dr. %s. Would you like to schedule one?", doctorName)
	}

	return appointmentsList(snap)
}

func sortedAppointments(appointments []model.Appointment) []model.Appointment {
	sorted := make([]model.Appointment, len(appointments))
	copy(sorted, appointments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DateTime.Before(sorted[j].DateTime)
	})
	return sorted
}

// upcomingAppointments returns future Scheduled appointments in
// ascending date order. Cancelled and Completed entries never count as
// upcoming.
func upcomingAppointments(appointments []model.Appointment, now time.Time) []model.Appointment {
	var upcoming []model.Appointment
	for _, appt := range sortedAppointments(appointments) {
		if appt.Status == model.AppointmentStatusScheduled && appt.DateTime.After(now) {
			upcoming = append(upcoming, appt)
		}
	}
	return upcoming
}

func specialtySuffix(specialty *string) string {
	if specialty == nil || *specialty == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", *specialty)
}

func purposeSuffix(purpose *string) string {
	if purpose == nil || *purpose == "" {
		return ""
	}
	return fmt.Sprintf(" for %s", *purpose)
}

func answerProfileQuestion(text string, profile *model.UserProfile) string {
	if profile == nil {
		return "I don't have your medical profile information yet. Please update your profile first."
	}

	msg := strings.ToLower(text)

	switch {
	case strings.Contains(msg, "height"):
		return fmt.Sprintf("Your height is %g cm.", profile.Height)

	case strings.Contains(msg, "weight"):
		return fmt.Sprintf("Your weight is %g kg.", profile.Weight)

	case strings.Contains(msg, "blood type"):
		return fmt.Sprintf("Your blood type is %s.", profile.BloodType)

	case strings.Contains(msg, "allergies"):
		if profile.Allergies == "" {
			return "You don't have any allergies listed in your profile."
		}
		return fmt.Sprintf("Your allergies include: %s", profile.Allergies)

	case strings.Contains(msg, "medical conditions") || strings.Contains(msg, "health conditions"):
		if profile.MedicalConditions == "" {
			return "You don't have any medical conditions listed in your profile."
		}
		return fmt.Sprintf("Your medical conditions include: %s", profile.MedicalConditions)

	case strings.Contains(msg, "emergency contact"):
		if profile.EmergencyContact == "" {
			return "You don't have an emergency contact listed in your profile."
		}
		return fmt.Sprintf("Your emergency contact is: %s", profile.EmergencyContact)
	}

	return fmt.Sprintf("Here's your medical profile:\n\n"+
		"- Height: %g cm\n"+
		"- Weight: %g kg\n"+
		"- Blood Type: %s\n"+
		"- Allergies: %s\n"+
		"- Medical Conditions: %s\n"+
		"- Emergency Contact: %s",
		profile.Height,
		profile.Weight,
		profile.BloodType,
		orNoneListed(profile.Allergies),
		orNoneListed(profile.MedicalConditions),
		orNoneListed(profile.EmergencyContact),
	)
}

func orNoneListed(s string) string {
	if s == "" {
		return "None listed"
	}
	return s
}

func answerInsightQuestion(snap *snapshot.Snapshot) string {
	if len(snap.Insights) == 0 {
		return "I don't have any health insights for you yet. They will be generated based on your health data and activity patterns."
	}

	sorted := make([]model.HealthInsight, len(snap.Insights))
	copy(sorted, snap.Insights)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].GeneratedAt.After(sorted[j].GeneratedAt)
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}

	var b strings.Builder
	b.WriteString("Here are your recent health insights:\n\n")
	for _, insight := range sorted {
		fmt.Fprintf(&b, "• %s: %s\n\n", insight.GeneratedAt.Format(dateLayout), insight.Content)
	}
	return b.String()
}

func timersList(snap *snapshot.Snapshot, now time.Time) string {
	if len(snap.Timers) == 0 {
		return "You don't have any timers set up. Would you like to create one now?"
	}

	var b strings.Builder
	b.WriteString("Here are your timers:\n\n")
	for _, timer := range snap.Timers {
		fmt.Fprintf(&b, "• %s - ", timer.Name)
		if timer.Status == model.TimerStatusRunning && timer.EndTime != nil {
			remaining := int(timer.EndTime.Sub(now).Seconds())
			if remaining < 0 {
				remaining = 0
			}
			fmt.Fprintf(&b, "Running (%s remaining)\n", intent.FormatTime(remaining))
		} else {
			fmt.Fprintf(&b, "%s (%s)\n", timer.Status, intent.FormatTime(timer.Duration))
		}
	}
	return b.String()
}
