package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/sigec-site/internal/domain"
)

var now = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func TestPointsFor(t *testing.T) {
	tests := []struct {
		typ  domain.InfractionType
		want int
	}{
		{domain.InfractionCancellation, 1},
		{domain.InfractionOvertime, 1},
		{domain.InfractionUserReport, 1},
		{domain.InfractionNoShow, 2},
		{domain.InfractionType("parking"), 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, PointsFor(tt.typ))
		})
	}
}

func TestRecordInfraction_ThreePointsNotSuspended(t *testing.T) {
	var s *domain.UserSuspension
	for i := 0; i < 3; i++ {
		s = RecordInfraction(s, domain.SuspensionPoint{UserID: "u-1", Type: domain.InfractionCancellation}, now, nil)
	}

	assert.Equal(t, 3, s.TotalPoints)
	assert.False(t, s.IsActive)
	assert.Nil(t, s.SuspendedUntil)
	assert.Len(t, s.Points, 3)
}

func TestRecordInfraction_FourPointsSuspendsOneMonth(t *testing.T) {
	s := RecordInfraction(nil, domain.SuspensionPoint{UserID: "u-1", Type: domain.InfractionNoShow}, now, nil)
	s = RecordInfraction(s, domain.SuspensionPoint{UserID: "u-1", Type: domain.InfractionNoShow}, now, nil)

	require.NotNil(t, s.SuspendedUntil)
	assert.Equal(t, 4, s.TotalPoints)
	assert.True(t, s.IsActive)
	assert.Equal(t, time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC), *s.SuspendedUntil)
}

func TestRecordInfraction_DoesNotMutateInput(t *testing.T) {
	first := RecordInfraction(nil, domain.SuspensionPoint{UserID: "u-1", Type: domain.InfractionOvertime}, now, nil)
	_ = RecordInfraction(first, domain.SuspensionPoint{UserID: "u-1", Type: domain.InfractionOvertime}, now, nil)

	assert.Equal(t, 1, first.TotalPoints)
	assert.Len(t, first.Points, 1)
}

func TestRecordInfraction_StampsPoint(t *testing.T) {
	s := RecordInfraction(nil, domain.SuspensionPoint{
		UserID:        "u-1",
		Type:          domain.InfractionCancellation,
		Reason:        "canceled",
		ReservationID: "r-1",
	}, now, nil)

	require.Len(t, s.Points, 1)
	assert.Equal(t, 1, s.Points[0].Points)
	assert.Equal(t, now, s.Points[0].CreatedAt)
	assert.Equal(t, "r-1", s.Points[0].ReservationID)
}

func TestIsSuspended(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, IsSuspended(nil, now))
	assert.False(t, IsSuspended(&domain.UserSuspension{}, now))
	assert.False(t, IsSuspended(&domain.UserSuspension{SuspendedUntil: &past}, now))
	assert.False(t, IsSuspended(&domain.UserSuspension{SuspendedUntil: &now}, now))
	assert.True(t, IsSuspended(&domain.UserSuspension{SuspendedUntil: &future}, now))
}
