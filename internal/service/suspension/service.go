package suspension

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/observability/telemetry"
	"github.com/seu-repo/sigec-site/internal/policy"
	"github.com/seu-repo/sigec-site/internal/ports"
	"github.com/seu-repo/sigec-site/internal/service/sitelock"
)

// Service accrues suspension points and answers eligibility questions
type Service struct {
	users        ports.UserRepository
	suspensions  ports.SuspensionRepository
	reservations ports.ReservationRepository
	events       ports.EventPublisher
	clock        ports.Clock
	ids          ports.IDGenerator
	locks        *sitelock.Locker
	resConfig    *domain.ReservationConfig
	config       *domain.SuspensionConfig
	log          *zap.Logger
}

// NewService creates a new suspension service
func NewService(
	users ports.UserRepository,
	suspensions ports.SuspensionRepository,
	reservations ports.ReservationRepository,
	events ports.EventPublisher,
	clock ports.Clock,
	ids ports.IDGenerator,
	locks *sitelock.Locker,
	resConfig *domain.ReservationConfig,
	config *domain.SuspensionConfig,
	log *zap.Logger,
) *Service {
	if resConfig == nil {
		resConfig = domain.DefaultReservationConfig()
	}
	if config == nil {
		config = domain.DefaultSuspensionConfig()
	}
	if locks == nil {
		locks = sitelock.New()
	}

	return &Service{
		users:        users,
		suspensions:  suspensions,
		reservations: reservations,
		events:       events,
		clock:        clock,
		ids:          ids,
		locks:        locks,
		resConfig:    resConfig,
		config:       config,
		log:          log,
	}
}

// RecordInfraction appends a suspension point to the user's history and
// suspends the user once the threshold is reached.
func (s *Service) RecordInfraction(ctx context.Context, userID string, typ domain.InfractionType, reason, reservationID string) (*domain.UserSuspension, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown infraction type %q: %w", typ, domain.ErrValidation)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	unlock := s.locks.Lock(sitelock.User(userID))
	defer unlock()

	current, err := s.suspensions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get suspension: %w", err)
	}
	wasSuspended := policy.IsSuspended(current, s.clock.Now())

	now := s.clock.Now()
	next := policy.RecordInfraction(current, domain.SuspensionPoint{
		ID:            s.ids.NewID("sp"),
		UserID:        userID,
		Type:          typ,
		Reason:        reason,
		ReservationID: reservationID,
		CreatedAt:     now,
	}, now, s.config)

	if err := s.suspensions.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save suspension: %w", err)
	}

	telemetry.SuspensionsTotal.WithLabelValues(string(typ)).Inc()
	s.log.Info("Suspension point recorded",
		zap.String("user_id", userID),
		zap.String("type", string(typ)),
		zap.Int("total_points", next.TotalPoints),
		zap.Bool("suspended", next.IsActive),
	)
	if next.IsActive && !wasSuspended {
		s.log.Warn("User suspended",
			zap.String("user_id", userID),
			zap.Timep("suspended_until", next.SuspendedUntil),
		)
	}

	s.publish(ctx, ports.TopicSuspensionRecorded, next)
	return next, nil
}

// GetSuspension returns the user's record with IsActive evaluated now, or nil.
func (s *Service) GetSuspension(ctx context.Context, userID string) (*domain.UserSuspension, error) {
	sus, err := s.suspensions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get suspension: %w", err)
	}
	if sus != nil {
		sus.IsActive = policy.IsSuspended(sus, s.clock.Now())
	}
	return sus, nil
}

// IsSuspended reports whether the user's suspension is in force.
func (s *Service) IsSuspended(ctx context.Context, userID string) (bool, error) {
	sus, err := s.suspensions.FindByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get suspension: %w", err)
	}
	return policy.IsSuspended(sus, s.clock.Now()), nil
}

// ClearSuspension removes the user's record, resetting points to zero.
// Authorization is the caller's responsibility.
func (s *Service) ClearSuspension(ctx context.Context, userID string) error {
	unlock := s.locks.Lock(sitelock.User(userID))
	defer unlock()

	if err := s.suspensions.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear suspension: %w", err)
	}

	s.log.Info("Suspension cleared", zap.String("user_id", userID))
	s.publish(ctx, ports.TopicSuspensionCleared, map[string]string{"user_id": userID})
	return nil
}

// CanUserReserve is the gate before booking: the user must exist, must not be
// suspended and must be under the weekly limit.
func (s *Service) CanUserReserve(ctx context.Context, userID string) (policy.Eligibility, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return policy.Eligibility{}, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return policy.CanUserReserve(nil, nil, nil, s.clock.Now(), s.resConfig), nil
	}

	sus, err := s.suspensions.FindByUserID(ctx, userID)
	if err != nil {
		return policy.Eligibility{}, fmt.Errorf("failed to get suspension: %w", err)
	}
	rs, err := s.reservations.Find(ctx, domain.ReservationFilter{UserID: userID})
	if err != nil {
		return policy.Eligibility{}, fmt.Errorf("failed to list reservations: %w", err)
	}

	return policy.CanUserReserve(user, sus, rs, s.clock.Now(), s.resConfig), nil
}

// WeeklyReservations counts the user's reservations in the trailing week.
func (s *Service) WeeklyReservations(ctx context.Context, userID string) (int, error) {
	rs, err := s.reservations.Find(ctx, domain.ReservationFilter{UserID: userID})
	if err != nil {
		return 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	return policy.CountWeeklyReservations(rs, userID, s.clock.Now()), nil
}

func (s *Service) publish(ctx context.Context, topic string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, topic, payload); err != nil {
		s.log.Warn("Failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
