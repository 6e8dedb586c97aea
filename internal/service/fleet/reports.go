package fleet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/ports"
)

// SubmitUserReport files a report. An occupied_spot report naming a pending
// reservation cancels that reservation, which charges its owner the usual
// cancellation point.
func (s *Service) SubmitUserReport(ctx context.Context, rep domain.UserReport) (*domain.UserReport, error) {
	if !rep.Type.Valid() {
		return nil, fmt.Errorf("unknown report type %q: %w", rep.Type, domain.ErrValidation)
	}
	if _, err := s.getUser(ctx, rep.ReporterID); err != nil {
		return nil, err
	}
	if rep.SiteID == "" {
		return nil, fmt.Errorf("site is required: %w", domain.ErrValidation)
	}

	rep.ID = s.ids.NewID("ur")
	rep.Status = domain.ReportStatusPending
	rep.CreatedAt = s.clock.Now()
	if err := s.reports.Create(ctx, &rep); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.log.Info("User report submitted",
		zap.String("report_id", rep.ID),
		zap.String("type", string(rep.Type)),
		zap.String("site_id", rep.SiteID),
	)
	s.publish(ctx, ports.TopicReportSubmitted, rep)

	if rep.Type == domain.ReportOccupiedSpot && rep.ReservationID != "" && s.canceler != nil {
		if _, err := s.canceler.CancelReservation(ctx, rep.ReservationID, "Spot reported occupied by "+rep.ReporterID); err != nil {
			s.log.Warn("Reported reservation was not canceled",
				zap.String("report_id", rep.ID),
				zap.String("reservation_id", rep.ReservationID),
				zap.Error(err),
			)
		}
	}
	return &rep, nil
}

// ListReports lists every user report
func (s *Service) ListReports(ctx context.Context) ([]domain.UserReport, error) {
	return s.reports.FindAll(ctx)
}
