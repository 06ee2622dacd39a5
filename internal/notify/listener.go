// Package notify maintains the WebSocket connection to the health
// backend's notification channel. Each typed notification triggers the
// matching targeted snapshot refresh so the cached view stays current
// without polling.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/medassist/assistant-gateway/pkg/model"
	"go.uber.org/zap"
)

const (
	initialReconnectDelay = 1 * time.Second
	maxReconnectDelay     = 60 * time.Second
)

// Refresher is the slice of the snapshot store the listener drives.
type Refresher interface {
	RefreshMedications(ctx context.Context) error
	RefreshAppointments(ctx context.Context) error
	RefreshTimers(ctx context.Context) error
	RefreshInsights(ctx context.Context) error
}

// Listener reads notifications from the backend and dispatches targeted
// refreshes. It reconnects with capped exponential backoff and stops
// cleanly when its context is cancelled.
type Listener struct {
	url       string
	refresher Refresher
	logger    *zap.Logger

	// dialer is swappable for tests.
	dialer *websocket.Dialer
}

func NewListener(url string, refresher Refresher, logger *zap.Logger) *Listener {
	return &Listener{
		url:       url,
		refresher: refresher,
		logger:    logger,
		dialer:    websocket.DefaultDialer,
	}
}

// Run connects and reads until the context is cancelled. Connection
// failures reset the session and back off; a successful connection
// resets the backoff delay.
func (l *Listener) Run(ctx context.Context) {
	delay := initialReconnectDelay

	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := l.dialer.DialContext(ctx, l.url, nil)
		if err != nil {
			l.logger.Warn("notification channel dial failed",
				zap.Error(err),
				zap.Duration("retry_in", delay),
			)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxReconnectDelay {
				delay = maxReconnectDelay
			}
			continue
		}

		l.logger.Info("notification channel connected", zap.String("url", l.url))
		delay = initialReconnectDelay

		l.readLoop(ctx, conn)
		conn.Close()

		if ctx.Err() != nil {
			return
		}
		l.logger.Warn("notification channel disconnected, reconnecting")
	}
}

// readLoop reads messages until the connection breaks or the context is
// cancelled. A goroutine closes the connection on cancellation to
// unblock the pending read.
func (l *Listener) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				l.logger.Warn("notification read failed", zap.Error(err))
			}
			return
		}

		var notification model.Notification
		if err := json.Unmarshal(raw, &notification); err != nil {
			l.logger.Warn("malformed notification", zap.Error(err), zap.ByteString("raw", raw))
			continue
		}

		l.Dispatch(ctx, notification)
	}
}

// Dispatch maps one notification type onto its targeted refresh.
// Unknown types are logged and ignored.
func (l *Listener) Dispatch(ctx context.Context, notification model.Notification) {
	var err error

	switch notification.Type {
	case model.NotificationMedicationReminder:
		err = l.refresher.RefreshMedications(ctx)
	case model.NotificationAppointmentReminder:
		err = l.refresher.RefreshAppointments(ctx)
	case model.NotificationTimerCompleted:
		err = l.refresher.RefreshTimers(ctx)
	case model.NotificationHealthInsight:
		err = l.refresher.RefreshInsights(ctx)
	default:
		l.logger.Warn("unknown notification type", zap.String("type", string(notification.Type)))
		return
	}

	if err != nil {
		l.logger.Warn("notification-driven refresh failed",
			zap.Error(err),
			zap.String("type", string(notification.Type)),
		)
		return
	}

	l.logger.Info("notification processed",
		zap.String("type", string(notification.Type)),
		zap.String("title", notification.Title),
	)
}
