// Package intent implements the intent-resolution and slot-extraction engine:
// an ordered cascade of regular-expression matchers that decides whether
// free-text input is an action command, a question answerable from cached
// local data, or something that must be forwarded to the AI responder, plus
// per-domain extractors that turn natural language into structured fields.
package intent

// Domain is a functional area with its own pattern set
type Domain string

const (
	DomainMedication  Domain = "medication"
	DomainAppointment Domain = "appointment"
	DomainTimer       Domain = "timer"
	DomainProfile     Domain = "profile"
	DomainInsight     Domain = "insight"
)

// Kind is the top-level classification of user text
type Kind int

const (
	KindUnmatched Kind = iota
	KindCommand
	KindQuestion
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindQuestion:
		return "question"
	default:
		return "unmatched"
	}
}

// Action identifies the specific operation a command intent requests
type Action string

const (
	ActionNone               Action = ""
	ActionAddMedication      Action = "add_medication"
	ActionListMedications    Action = "list_medications"
	ActionMedicationStatus   Action = "medication_status"
	ActionAddAppointment     Action = "add_appointment"
	ActionListAppointments   Action = "list_appointments"
	ActionAddTimer           Action = "add_timer"
	ActionListTimers         Action = "list_timers"
	ActionNaturalMedication  Action = "natural_medication"
	ActionNaturalAppointment Action = "natural_appointment"
	ActionNaturalTimer       Action = "natural_timer"
)

// Intent is the classified meaning of user text. A Command carries the
// action to perform; a Question carries only the domain whose cached data
// can answer it; Unmatched signals the caller to fall back to the external
// responder.
type Intent struct {
	Kind   Kind
	Domain Domain
	Action Action
}

// Unmatched is the zero intent returned when no pattern applies
var Unmatched = Intent{Kind: KindUnmatched}
