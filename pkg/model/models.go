package model

import "time"

// MedicationStatus represents the current state of a medication entry
type MedicationStatus string

const (
	MedicationStatusPending MedicationStatus = "Pending"
	MedicationStatusTaken   MedicationStatus = "Taken"
	MedicationStatusMissed  MedicationStatus = "Missed"
)

// ReminderStatus represents the state of a scheduled medication reminder
type ReminderStatus string

const (
	ReminderStatusPending      ReminderStatus = "Pending"
	ReminderStatusAcknowledged ReminderStatus = "Acknowledged"
)

// Reminder represents a single scheduled dose reminder for a medication
type Reminder struct {
	ScheduledTime time.Time      `json:"scheduled_time"`
	Status        ReminderStatus `json:"status"`
}

// Medication represents a medication record owned by the health backend.
// The gateway holds read-only cached copies only.
type Medication struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Dosage    string           `json:"dosage"`
	Frequency string           `json:"frequency"`
	TimeOfDay string           `json:"time_of_day"`
	Status    MedicationStatus `json:"status"`
	Notes     *string          `json:"notes,omitempty"`
	Reminders []Reminder       `json:"reminders,omitempty"`
}

// AppointmentStatus represents the state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
)

// Appointment represents a doctor appointment
type Appointment struct {
	ID         string            `json:"id"`
	DoctorName string            `json:"doctor_name"`
	Specialty  *string           `json:"specialty,omitempty"`
	Location   string            `json:"location"`
	DateTime   time.Time         `json:"date_time"`
	Purpose    *string           `json:"purpose,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
	Status     AppointmentStatus `json:"status"`
}

// TimerStatus represents the state of a timer
type TimerStatus string

const (
	TimerStatusReady     TimerStatus = "Ready"
	TimerStatusRunning   TimerStatus = "Running"
	TimerStatusPaused    TimerStatus = "Paused"
	TimerStatusCompleted TimerStatus = "Completed"
)

// Timer represents a countdown timer. Duration is the authoritative length
// in seconds; EndTime is only meaningful while the timer is Running.
type Timer struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Duration int         `json:"duration"`
	Status   TimerStatus `json:"status"`
	EndTime  *time.Time  `json:"end_time,omitempty"`
}

// UserProfile represents the user's medical profile
type UserProfile struct {
	Height            float64 `json:"height"`
	Weight            float64 `json:"weight"`
	BloodType         string  `json:"blood_type"`
	Allergies         string  `json:"allergies,omitempty"`
	MedicalConditions string  `json:"medical_conditions,omitempty"`
	EmergencyContact  string  `json:"emergency_contact,omitempty"`
	PreferredLanguage string  `json:"preferred_language,omitempty"`
}

// HealthInsight represents a generated health insight
type HealthInsight struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
	IsRead      bool      `json:"is_read"`
}

// NotificationType identifies the kind of real-time notification
type NotificationType string

const (
	NotificationMedicationReminder  NotificationType = "medication_reminder"
	NotificationAppointmentReminder NotificationType = "appointment_reminder"
	NotificationTimerCompleted      NotificationType = "timer_completed"
	NotificationHealthInsight       NotificationType = "health_insight"
)

// Notification is the wire shape of the backend's real-time channel.
// At most one of the ID fields is set, matching the notification type.
type Notification struct {
	Type          NotificationType `json:"type"`
	Title         string           `json:"title,omitempty"`
	Message       string           `json:"message,omitempty"`
	MedicationID  *string          `json:"medication_id,omitempty"`
	AppointmentID *string          `json:"appointment_id,omitempty"`
	TimerID       *string          `json:"timer_id,omitempty"`
	InsightID     *string          `json:"insight_id,omitempty"`
}
