package ports

import (
	"context"
	"time"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// Clock supplies the current time. Tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces entity ids and human-readable kiosk codes.
type IDGenerator interface {
	NewID(prefix string) string
	// NewCode returns PREFIX-#### with a four digit number.
	NewCode(prefix string) string
}

// EventPublisher emits domain events. Delivery failures are reported but
// never roll back the state change that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// SnapshotStore persists the full application state under a fixed namespace.
// Load returns (nil, nil) when nothing has been saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snapshot *domain.Snapshot) error
	Clear(ctx context.Context) error
}

// Event topics
const (
	TopicReservationBooked      = "reservation.booked"
	TopicReservationConfirmed   = "reservation.confirmed"
	TopicReservationRescheduled = "reservation.rescheduled"
	TopicReservationCanceled    = "reservation.canceled"
	TopicReservationNoShow      = "reservation.no_show"
	TopicReservationExpired     = "reservation.expired"
	TopicSessionStarted         = "session.started"
	TopicSessionEnded           = "session.ended"
	TopicSessionReassigned      = "session.reassigned"
	TopicSuspensionRecorded     = "suspension.recorded"
	TopicSuspensionCleared      = "suspension.cleared"
	TopicExpressStarted         = "express.started"
	TopicExpressEnded           = "express.ended"
	TopicTicketOpened           = "ticket.opened"
	TopicTicketUpdated          = "ticket.updated"
	TopicReportSubmitted        = "report.submitted"
)

// Topics lists every event topic, used by relays that fan events out.
var Topics = []string{
	TopicReservationBooked, TopicReservationConfirmed, TopicReservationRescheduled,
	TopicReservationCanceled, TopicReservationNoShow, TopicReservationExpired,
	TopicSessionStarted, TopicSessionEnded, TopicSessionReassigned,
	TopicSuspensionRecorded, TopicSuspensionCleared,
	TopicExpressStarted, TopicExpressEnded,
	TopicTicketOpened, TopicTicketUpdated, TopicReportSubmitted,
}
