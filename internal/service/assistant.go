// Package service hosts the assistant engine: classification, command
// handling, local question answering over the snapshot, and dispatch to
// the fallback responder when nothing local applies.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/medassist/assistant-gateway/internal/ai"
	"github.com/medassist/assistant-gateway/internal/intent"
	"github.com/medassist/assistant-gateway/internal/snapshot"
	"go.uber.org/zap"
)

// FormKind identifies a form the presentation layer should open.
type FormKind string

const (
	FormNone        FormKind = ""
	FormMedication  FormKind = "medication"
	FormAppointment FormKind = "appointment"
	FormTimer       FormKind = "timer"
)

// Reply is the assistant's answer to one message. Spoken carries the
// text-to-speech variant for voice replies and is empty for chat.
// Navigate names a section the UI should switch to, if any.
type Reply struct {
	Text     string
	Spoken   string
	OpenForm FormKind
	Prefill  any
	Navigate string
}

const (
	medicationFormReply  = "I've opened the medication form for you. Please fill in the details."
	appointmentFormReply = "I've opened the appointment form for you. Please fill in the details."
	timerFormReply       = "I've opened the timer form for you. Please specify the duration."

	fallbackApology   = "Sorry, I encountered an error while trying to get an answer. Please try again."
	processingApology = "Sorry, I encountered an error processing your request. Please try again."
)

// Backend is the slice of the backend client the engine writes through.
type Backend interface {
	CreateTimer(ctx context.Context, name string, duration int) (string, error)
	StartTimer(ctx context.Context, id string) error
}

// Snapshots is the engine's view of the snapshot store.
type Snapshots interface {
	View() *snapshot.Snapshot
	RefreshTimers(ctx context.Context) error
}

// Assistant orchestrates one message's journey through the engine. All
// local processing is synchronous over the current snapshot; only the
// backend and the fallback responder do I/O.
type Assistant struct {
	store     Snapshots
	backend   Backend
	responder ai.Responder
	logger    *zap.Logger
	now       func() time.Time
}

func NewAssistant(store Snapshots, backend Backend, responder ai.Responder, logger *zap.Logger) *Assistant {
	return &Assistant{
		store:     store,
		backend:   backend,
		responder: responder,
		logger:    logger,
		now:       time.Now,
	}
}

// ProcessMessage resolves one chat message. Commands are tried first;
// a natural-language command whose slots cannot be extracted falls
// through to question answering, and anything still unresolved goes to
// the fallback responder.
func (a *Assistant) ProcessMessage(ctx context.Context, text string) Reply {
	in := intent.Classify(text)

	if in.Kind == intent.KindCommand {
		if reply, handled := a.handleCommand(ctx, text, in); handled {
			return reply
		}
	}

	if answer, ok := a.answerLocally(text); ok {
		return Reply{Text: answer}
	}

	return a.fallback(ctx, text)
}

func (a *Assistant) handleCommand(ctx context.Context, text string, in intent.Intent) (Reply, bool) {
	snap := a.store.View()

	switch in.Action {
	case intent.ActionAddMedication:
		return Reply{Text: medicationFormReply, OpenForm: FormMedication}, true

	case intent.ActionListMedications:
		return Reply{Text: medicationsList(snap)}, true

	case intent.ActionMedicationStatus:
		return Reply{Text: medicationStatusAnswer(text, snap)}, true

	case intent.ActionAddAppointment:
		return Reply{Text: appointmentFormReply, OpenForm: FormAppointment}, true

	case intent.ActionListAppointments:
		return Reply{Text: appointmentsList(snap)}, true

	case intent.ActionAddTimer:
		return Reply{Text: timerFormReply, OpenForm: FormTimer}, true

	case intent.ActionListTimers:
		return Reply{Text: timersList(snap, a.now())}, true

	case intent.ActionNaturalMedication:
		slots := intent.ExtractMedicationSlots(text)
		if slots.Name == "" {
			return Reply{}, false
		}
		return Reply{
			Text:     fmt.Sprintf("I've started creating a medication reminder for %s. Please review and complete any missing information.", slots.Name),
			OpenForm: FormMedication,
			Prefill:  slots,
		}, true

	case intent.ActionNaturalAppointment:
		slots := intent.ExtractAppointmentSlots(text, a.now())
		if slots.DoctorName == "" {
			return Reply{}, false
		}
		return Reply{
			Text:     fmt.Sprintf("I've started creating an appointment with Dr. %s. Please review and complete any missing information.", slots.DoctorName),
			OpenForm: FormAppointment,
			Prefill:  slots,
		}, true

	case intent.ActionNaturalTimer:
		slots := intent.ExtractTimerSlots(text)
		if slots.Duration == 0 {
			return Reply{}, false
		}
		return a.startTimer(ctx, slots), true
	}

	return Reply{}, false
}

// startTimer auto-executes a fully specified timer command: create,
// start, then refresh the cached timers so the new one is visible
// immediately.
func (a *Assistant) startTimer(ctx context.Context, slots intent.TimerSlots) Reply {
	id, err := a.backend.CreateTimer(ctx, slots.Name, slots.Duration)
	if err != nil {
		a.logger.Error("failed to create timer",
			zap.Error(err),
			zap.String("name", slots.Name),
			zap.Int("duration", slots.Duration),
		)
		return Reply{Text: processingApology}
	}

	if err := a.backend.StartTimer(ctx, id); err != nil {
		a.logger.Error("failed to start timer",
			zap.Error(err),
			zap.String("timer_id", id),
		)
		return Reply{Text: processingApology}
	}

	if err := a.store.RefreshTimers(ctx); err != nil {
		a.logger.Warn("timer refresh after create failed", zap.Error(err))
	}

	a.logger.Info("timer started",
		zap.String("timer_id", id),
		zap.String("name", slots.Name),
		zap.Int("duration", slots.Duration),
	)

	return Reply{Text: fmt.Sprintf("I've started a %s for %s.", slots.Name, intent.FormatDuration(slots.Duration))}
}

// answerLocally tries the question patterns domain by domain against the
// snapshot. The second return is false when no local data applies and
// the message should go to the fallback responder.
func (a *Assistant) answerLocally(text string) (string, bool) {
	snap := a.store.View()

	if matchesAny(intent.Questions(intent.DomainMedication), text) {
		return answerMedicationQuestion(text, snap)
	}
	if matchesAny(intent.Questions(intent.DomainAppointment), text) {
		return answerAppointmentQuestion(text, snap, a.now()), true
	}
	if matchesAny(intent.Questions(intent.DomainProfile), text) {
		return answerProfileQuestion(text, snap.Profile), true
	}
	if matchesAny(intent.Questions(intent.DomainInsight), text) {
		return answerInsightQuestion(snap), true
	}
	return "", false
}

func (a *Assistant) fallback(ctx context.Context, text string) Reply {
	snap := a.store.View()

	answer, err := a.responder.Respond(ctx, text, snap.Profile)
	if err != nil {
		a.logger.Warn("fallback responder failed", zap.Error(err))
		return Reply{Text: fallbackApology}
	}
	return Reply{Text: answer}
}
