package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EventKind identifies the outbound message to render.
type EventKind string

const (
	KindConfirmation EventKind = "confirmation"
	KindRescheduled  EventKind = "rescheduled"
	KindCancelled    EventKind = "cancelled"
)

// Event is an outbound notification emitted after a booking operation commits.
type Event struct {
	Kind        EventKind
	To          string
	VisitorName string
	VisitedName string // visited person, or "Area de <area>" when free text is absent
	Area        string
	Date        string
	Time        string
	OldDate     string // rescheduled only
	OldTime     string // rescheduled only
	Plate       string
}

// Sender delivers one rendered message.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Dispatcher consumes booking events and delivers them best-effort.
// Delivery never feeds back into the booking outcome: a full queue or a
// failed send is logged and dropped.
type Dispatcher struct {
	sender Sender
	queue  chan Event
	logger *zap.Logger
}

// NewDispatcher builds a Dispatcher with a bounded backlog.
func NewDispatcher(sender Sender, queueSize int, logger *zap.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{
		sender: sender,
		queue:  make(chan Event, queueSize),
		logger: logger,
	}
}

// Enqueue hands an event to the dispatcher without blocking the caller.
func (d *Dispatcher) Enqueue(evt Event) {
	select {
	case d.queue <- evt:
	default:
		d.logger.Warn("notification queue full, dropping event",
			zap.String("kind", string(evt.Kind)),
			zap.String("to", evt.To),
		)
	}
}

// Start runs the delivery loop until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt := <-d.queue:
				d.deliver(evt)
			}
		}
	}()
}

// deliver renders and sends one event, retrying once before giving up.
func (d *Dispatcher) deliver(evt Event) {
	if evt.To == "" {
		d.logger.Warn("notification event without recipient",
			zap.String("kind", string(evt.Kind)))
		return
	}

	subject, body, err := Render(evt)
	if err != nil {
		d.logger.Error("rendering notification failed",
			zap.String("kind", string(evt.Kind)), zap.Error(err))
		return
	}

	if err := d.sender.Send(evt.To, subject, body); err != nil {
		time.Sleep(2 * time.Second)
		if err := d.sender.Send(evt.To, subject, body); err != nil {
			d.logger.Error("notification delivery failed",
				zap.String("kind", string(evt.Kind)),
				zap.String("to", evt.To),
				zap.Error(err),
			)
			return
		}
	}

	d.logger.Info("notification delivered",
		zap.String("kind", string(evt.Kind)),
		zap.String("to", evt.To),
	)
}
