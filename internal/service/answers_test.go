package service

import (
	"testing"
	"time"

	"github.com/medassist/assistant-gateway/internal/snapshot"
	"github.com/medassist/assistant-gateway/pkg/model"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestMedicationsList_EmptySentinel(t *testing.T) {
	got := medicationsList(&snapshot.Snapshot{})
	assert.Equal(t, "You don't have any medications added yet. Would you like to add one now?", got)
}

func TestMedicationsList_Rendering(t *testing.T) {
	snap := &snapshot.Snapshot{
		Medications: []model.Medication{
			{Name: "Aspirin", Dosage: "100mg", Frequency: "Once daily", TimeOfDay: "8:00 am", Status: model.MedicationStatusTaken},
			{Name: "Metformin", Dosage: "500mg", Frequency: "Twice daily", TimeOfDay: "morning", Status: model.MedicationStatusPending},
		},
	}

	got := medicationsList(snap)
	assert.Equal(t, "Here are your medications:\n\n"+
		"• Aspirin (100mg) - Once daily, 8:00 am\n"+
		"  Status: Taken\n"+
		"• Metformin (500mg) - Twice daily, morning\n"+
		"  Status: Pending\n", got)
}

func TestAnswerMedicationQuestion(t *testing.T) {
	notes := strPtr("Take with food")
	snap := &snapshot.Snapshot{
		Medications: []model.Medication{
			{Name: "Aspirin", Dosage: "100mg", Frequency: "Once daily", TimeOfDay: "8:00 am", Status: model.MedicationStatusPending, Notes: notes},
		},
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "when to take",
			text: "when do i take aspirin",
			want: "You should take Aspirin once daily at 8:00 am.",
		},
		{
			name: "dosage",
			text: "what dosage of aspirin",
			want: "The dosage for Aspirin is 100mg.",
		},
		{
			name: "amount",
			text: "how much aspirin do i take",
			want: "The dosage for Aspirin is 100mg.",
		},
		{
			name: "general info includes notes",
			text: "tell me about my aspirin medication",
			want: "Aspirin (100mg):\n- Take it once daily at 8:00 am\n- Current status: Pending\n- Notes: Take with food",
		},
		{
			name: "unknown medication",
			text: "when do i take warfarin",
			want: `I couldn't find any medication called "warfarin" in your records. Would you like to add it?`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := answerMedicationQuestion(tt.text, snap)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswerMedicationQuestion_NoNameFallsThrough(t *testing.T) {
	snap := &snapshot.Snapshot{
		Medications: []model.Medication{{Name: "Aspirin"}},
	}

	_, ok := answerMedicationQuestion("what medications am i taking today", snap)
	assert.True(t, ok, "general listing request is answerable")

	_, ok = answerMedicationQuestion("how does this work", snap)
	assert.False(t, ok, "question naming no medication must fall through")
}

func TestAppointmentsList_SkipsNonScheduled(t *testing.T) {
	base := time.Date(2026, time.July, 1, 14, 30, 0, 0, time.UTC)
	snap := &snapshot.Snapshot{
		Appointments: []model.Appointment{
			{DoctorName: "Lee", Location: "Clinic", DateTime: base, Status: model.AppointmentStatusScheduled, Specialty: strPtr("Cardiology"), Purpose: strPtr("checkup")},
			{DoctorName: "Kim", Location: "Clinic", DateTime: base.Add(time.Hour), Status: model.AppointmentStatusCancelled},
		},
	}

	got := appointmentsList(snap)
	assert.Contains(t, got, "Here are your upcoming appointments:")
	assert.Contains(t, got, "• 7/1/2026 at 02:30 PM\n  Dr. Lee (Cardiology)\n  Location: Clinic\n  Purpose: checkup\n")
	assert.NotContains(t, got, "Kim")
}

func TestAnswerAppointmentQuestion_DoctorLookup(t *testing.T) {
	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)
	snap := &snapshot.Snapshot{
		Appointments: []model.Appointment{
			{DoctorName: "Smith", Location: "Main St Clinic", DateTime: now.Add(72 * time.Hour), Status: model.AppointmentStatusScheduled},
		},
	}

	got := answerAppointmentQuestion("when do i see dr smith", snap, now)
	assert.Contains(t, got, "Your next appointment with Dr. Smith is on 6/13/2026")
	assert.Contains(t, got, "at Main St Clinic")

	got = answerAppointmentQuestion("when do i see dr jones", snap, now)
	assert.Equal(t, "You don't have any upcoming appointments with Dr. jones. Would you like to schedule one?", got)
}

func TestAnswerAppointmentQuestion_NoUpcomingSentinel(t *testing.T) {
	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)
	snap := &snapshot.Snapshot{
		Appointments: []model.Appointment{
			{DoctorName: "Smith", DateTime: now.Add(-time.Hour), Status: model.AppointmentStatusScheduled},
		},
	}

	got := answerAppointmentQuestion("when is my next appointment", snap, now)
	assert.Equal(t, "You don't have any upcoming appointments scheduled. Would you like to schedule one now?", got)
}

func TestAnswerProfileQuestion(t *testing.T) {
	profile := &model.UserProfile{
		Height:            180,
		Weight:            75.5,
		BloodType:         "A+",
		Allergies:         "Penicillin",
		MedicalConditions: "",
		EmergencyContact:  "Jamie, 555-0100",
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"height", "what is my height", "Your height is 180 cm."},
		{"weight", "what is my weight", "Your weight is 75.5 kg."},
		{"blood type", "what is my blood type", "Your blood type is A+."},
		{"allergies", "what are my allergies", "Your allergies include: Penicillin"},
		{"no conditions", "what are my medical conditions", "You don't have any medical conditions listed in your profile."},
		{"emergency contact", "who is my emergency contact", "Your emergency contact is: Jamie, 555-0100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, answerProfileQuestion(tt.text, profile))
		})
	}
}

func TestAnswerProfileQuestion_NilProfile(t *testing.T) {
	got := answerProfileQuestion("what is my height", nil)
	assert.Equal(t, "I don't have your medical profile information yet. Please update your profile first.", got)
}

func TestAnswerProfileQuestion_FullDump(t *testing.T) {
	profile := &model.UserProfile{Height: 180, Weight: 75, BloodType: "A+"}

	got := answerProfileQuestion("my medical profile", profile)
	assert.Contains(t, got, "Here's your medical profile:")
	assert.Contains(t, got, "- Allergies: None listed")
	assert.Contains(t, got, "- Emergency Contact: None listed")
}

func TestAnswerInsightQuestion_TopThreeNewestFirst(t *testing.T) {
	base := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	snap := &snapshot.Snapshot{
		Insights: []model.HealthInsight{
			{Content: "oldest", GeneratedAt: base},
			{Content: "newest", GeneratedAt: base.AddDate(0, 0, 3)},
			{Content: "older", GeneratedAt: base.AddDate(0, 0, 1)},
			{Content: "newer", GeneratedAt: base.AddDate(0, 0, 2)},
		},
	}

	got := answerInsightQuestion(snap)
	assert.Equal(t, "Here are your recent health insights:\n\n"+
		"• 6/4/2026: newest\n\n"+
		"• 6/3/2026: newer\n\n"+
		"• 6/2/2026: older\n\n", got)
}

func TestAnswerInsightQuestion_EmptySentinel(t *testing.T) {
	got := answerInsightQuestion(&snapshot.Snapshot{})
	assert.Equal(t, "I don't have any health insights for you yet. They will be generated based on your health data and activity patterns.", got)
}

func TestTimersList(t *testing.T) {
	now := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)
	end := now.Add(90 * time.Second)
	snap := &snapshot.Snapshot{
		Timers: []model.Timer{
			{Name: "Tea", Duration: 300, Status: model.TimerStatusRunning, EndTime: &end},
			{Name: "Laundry", Duration: 1200, Status: model.TimerStatusPaused},
		},
	}

	got := timersList(snap, now)
	assert.Equal(t, "Here are your timers:\n\n"+
		"• Tea - Running (00:01:30 remaining)\n"+
		"• Laundry - Paused (00:20:00)\n", got)
}

func TestTimersList_EmptySentinel(t *testing.T) {
	got := timersList(&snapshot.Snapshot{}, time.Now())
	assert.Equal(t, "You don't have any timers set up. Would you like to create one now?", got)
}

func TestMedicationStatusAnswer(t *testing.T) {
	snap := &snapshot.Snapshot{
		Medications: []model.Medication{
			{Name: "Aspirin", Dosage: "100mg", Frequency: "Once daily", TimeOfDay: "8:00 am", Status: model.MedicationStatusTaken},
		},
	}

	got := medicationStatusAnswer("did i take aspirin", snap)
	assert.Equal(t, "Aspirin is currently marked as Taken.", got)

	// Unknown name falls back to the full list with statuses.
	got = medicationStatusAnswer("medication status", snap)
	assert.Contains(t, got, "Status: Taken")
}
