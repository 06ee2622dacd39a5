package intent

import "regexp"

// The registry is static configuration: ordered, case-insensitive pattern
// groups compiled once at package load. First match wins everywhere, so
// the order inside each group is part of the contract.

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile("(?i)"+e))
	}
	return out
}

// Command patterns: imperative forms that map directly to an action.
var (
	addMedicationPatterns = compileAll(
		`add (a )?(new )?medication`,
		`create (a )?(new )?medication`,
		`new medication`,
	)
	listMedicationsPatterns = compileAll(
		`list (my |all )?medications`,
		`show (my |all )?medications`,
		`what (are my|are the) medications`,
		`my medications`,
	)
	medicationStatusPatterns = compileAll(
		`medication status`,
		`have i taken my (\w+)`,
		`did i take (\w+)`,
	)
	addAppointmentPatterns = compileAll(
		`add (a )?(new )?appointment`,
		`schedule (a )?(new )?appointment`,
		`create (a )?(new )?appointment`,
		`book (a )?(new )?appointment`,
	)
	listAppointmentsPatterns = compileAll(
		`list (my |all )?appointments`,
		`show (my |all )?appointments`,
		`what (are my|are the) appointments`,
		`my appointments`,
		`upcoming appointments`,
	)
	addTimerPatterns = compileAll(
		`add (a )?(new )?timer`,
		`create (a )?(new )?timer`,
		`set (a )?(new )?timer`,
		`start (a )?(new )?timer`,
	)
	listTimersPatterns = compileAll(
		`list (my |all )?timers`,
		`show (my |all )?timers`,
		`what (are my|are the) timers`,
		`my timers`,
		`active timers`,
	)
)

// Natural-language command detectors: looser phrasings that require slot
// extraction before anything can be executed.
var (
	naturalMedicationPatterns = compileAll(
		`remind me to take (\w+)`,
		`add (\w+) (\d+\s*mg|\d+\s*ml) (once|twice|three times) (daily|a day)`,
		`create medication (\w+)`,
		`add (\w+) to my medications`,
		`set reminder for (\w+)`,
	)
	naturalAppointmentPatterns = compileAll(
		`schedule (an )?(appointment|visit) with (dr|doctor)\.? (\w+)`,
		`book (an )?(appointment|visit)`,
		`make (an )?(appointment|visit)`,
		`see (dr|doctor)\.? (\w+)`,
	)
	naturalTimerPatterns = compileAll(
		`set (a )?timer for (\d+) (minute|minutes|hour|hours|second|seconds)`,
		`start (a )?timer for (\d+) (minute|minutes|hour|hours|second|seconds)`,
		`(\d+) (minute|minutes|hour|hours|second|seconds) timer`,
	)
)

// Question patterns: interrogative forms answerable from cached local data.
var (
	medicationQuestionPatterns = compileAll(
		`what medications (am i|do i) (taking|have)`,
		`when (do i|should i) take (\w+)`,
		`what dosage (of|for) (\w+)`,
		`how (many|much) (\w+) (do i|should i) take`,
		`tell me about my (\w+) medication`,
	)
	appointmentQuestionPatterns = compileAll(
		`when is my (next|upcoming) appointment`,
		`do i have (an|any) appointment`,
		`what appointments do i have`,
		`when (am i|do i) see (doctor|dr) (\w+)`,
		`appointment with (doctor|dr) (\w+)`,
	)
	profileQuestionPatterns = compileAll(
		`what is my (height|weight|blood type)`,
		`what are my (allergies|medical conditions)`,
		`who is my emergency contact`,
		`my (profile|medical profile|health profile)`,
	)
	insightQuestionPatterns = compileAll(
		`health insights`,
		`my health (status|condition)`,
		`recent insights`,
		`any health (tips|advice)`,
	)
)

// matcher binds one intent to its ordered pattern battery.
type matcher struct {
	intent   Intent
	patterns []*regexp.Regexp
}

// cascade is the full evaluation order: exact commands per domain
// (medication, appointment, timer), then natural-language command
// detectors in the same domain order, then question patterns
// (medication, appointment, profile, insight). Classification walks
// this list top to bottom and stops at the first match.
var cascade = []matcher{
	{Intent{KindCommand, DomainMedication, ActionAddMedication}, addMedicationPatterns},
	{Intent{KindCommand, DomainMedication, ActionListMedications}, listMedicationsPatterns},
	{Intent{KindCommand, DomainMedication, ActionMedicationStatus}, medicationStatusPatterns},
	{Intent{KindCommand, DomainAppointment, ActionAddAppointment}, addAppointmentPatterns},
	{Intent{KindCommand, DomainAppointment, ActionListAppointments}, listAppointmentsPatterns},
	{Intent{KindCommand, DomainTimer, ActionAddTimer}, addTimerPatterns},
	{Intent{KindCommand, DomainTimer, ActionListTimers}, listTimersPatterns},

	{Intent{KindCommand, DomainMedication, ActionNaturalMedication}, naturalMedicationPatterns},
	{Intent{KindCommand, DomainAppointment, ActionNaturalAppointment}, naturalAppointmentPatterns},
	{Intent{KindCommand, DomainTimer, ActionNaturalTimer}, naturalTimerPatterns},

	{Intent{KindQuestion, DomainMedication, ActionNone}, medicationQuestionPatterns},
	{Intent{KindQuestion, DomainAppointment, ActionNone}, appointmentQuestionPatterns},
	{Intent{KindQuestion, DomainProfile, ActionNone}, profileQuestionPatterns},
	{Intent{KindQuestion, DomainInsight, ActionNone}, insightQuestionPatterns},
}

// Questions returns the ordered question patterns for a domain. Domains
// without question patterns (timer) return nil.
func Questions(d Domain) []*regexp.Regexp {
	switch d {
	case DomainMedication:
		return medicationQuestionPatterns
	case DomainAppointment:
		return appointmentQuestionPatterns
	case DomainProfile:
		return profileQuestionPatterns
	case DomainInsight:
		return insightQuestionPatterns
	default:
		return nil
	}
}
