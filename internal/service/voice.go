package service

import (
	"context"
	"strings"

	"github.com/medassist/assistant-gateway/internal/intent"
)

// Voice keyword routing. Transcripts containing a domain keyword get a
// dedicated spoken handler; everything else goes through the regular
// message pipeline. Keyword order is a fixed precedence.

const (
	sectionMedications  = "medications"
	sectionAppointments = "appointments"
	sectionTimers       = "timers"
)

// ProcessTranscript resolves one voice transcript. Replies always carry
// Spoken text for the presentation layer's TTS.
func (a *Assistant) ProcessTranscript(ctx context.Context, transcript string) Reply {
	lower := strings.ToLower(transcript)

	switch {
	case strings.Contains(lower, "medication"):
		if reply, handled := a.voiceMedication(transcript, lower); handled {
			return reply
		}
	case strings.Contains(lower, "appointment"):
		if reply, handled := a.voiceAppointment(transcript, lower); handled {
			return reply
		}
	case strings.Contains(lower, "timer"):
		if reply, handled := a.voiceTimer(transcript, lower); handled {
			return reply
		}
	case strings.Contains(lower, "remind me"):
		return a.voiceReminder(ctx, transcript, lower)
	}

	reply := a.ProcessMessage(ctx, transcript)
	reply.Spoken = reply.Text
	return reply
}

func (a *Assistant) voiceMedication(transcript, lower string) (Reply, bool) {
	switch {
	case strings.Contains(lower, "add") || strings.Contains(lower, "new"):
		slots := intent.ExtractMedicationSlots(transcript)
		if slots.Name != "" {
			return spoken(Reply{
				Text:     "I've prepared a medication form with the details I heard. Please review and complete any missing information.",
				OpenForm: FormMedication,
				Prefill:  slots,
			}), true
		}
		return spoken(Reply{
			Text:     "I've opened the medication form. Please fill in the details.",
			OpenForm: FormMedication,
		}), true

	case strings.Contains(lower, "list") || strings.Contains(lower, "show"):
		return spoken(Reply{
			Text:     "Here are your medications.",
			Navigate: sectionMedications,
		}), true
	}
	return Reply{}, false
}

func (a *Assistant) voiceAppointment(transcript, lower string) (Reply, bool) {
	switch {
	case strings.Contains(lower, "add") || strings.Contains(lower, "new") || strings.Contains(lower, "schedule"):
		slots := intent.ExtractAppointmentSlots(transcript, a.now())
		if slots.DoctorName != "" {
			return spoken(Reply{
				Text:     "I've prepared an appointment form with the details I heard. Please review and complete any missing information.",
				OpenForm: FormAppointment,
				Prefill:  slots,
			}), true
		}
		return spoken(Reply{
			Text:     "I've opened the appointment form. Please fill in the details.",
			OpenForm: FormAppointment,
		}), true

	case strings.Contains(lower, "list") || strings.Contains(lower, "show"):
		return spoken(Reply{
			Text:     "Here are your appointments.",
			Navigate: sectionAppointments,
		}), true
	}
	return Reply{}, false
}

func (a *Assistant) voiceTimer(transcript, lower string) (Reply, bool) {
	switch {
	case strings.Contains(lower, "start") || strings.Contains(lower, "set"):
		slots := intent.ExtractTimerSlots(transcript)
		if slots.Duration > 0 {
			return spoken(Reply{
				Text:     "I've set up a timer for " + intent.FormatDuration(slots.Duration) + ". Please review and confirm.",
				OpenForm: FormTimer,
				Prefill:  slots,
			}), true
		}
		return spoken(Reply{
			Text:     "I've opened the timer form. Please specify the duration.",
			OpenForm: FormTimer,
		}), true

	case strings.Contains(lower, "list") || strings.Contains(lower, "show"):
		return spoken(Reply{
			Text:     "Here are your timers.",
			Navigate: sectionTimers,
		}), true
	}
	return Reply{}, false
}

// voiceReminder re-routes reminder phrasings onto the medication or
// appointment handlers; anything else goes straight to the fallback
// responder.
func (a *Assistant) voiceReminder(ctx context.Context, transcript, lower string) Reply {
	if strings.Contains(lower, "take") && (strings.Contains(lower, "pill") || strings.Contains(lower, "medication")) {
		if reply, handled := a.voiceMedication(transcript, lower); handled {
			return reply
		}
	}
	if strings.Contains(lower, "doctor") || strings.Contains(lower, "appointment") {
		if reply, handled := a.voiceAppointment(transcript, lower); handled {
			return reply
		}
	}

	reply := a.fallback(ctx, transcript)
	reply.Spoken = reply.Text
	return reply
}

func spoken(r Reply) Reply {
	r.Spoken = r.Text
	return r
}
