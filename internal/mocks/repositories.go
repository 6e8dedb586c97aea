package mocks

import (
	"context"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// MockReservationRepository is a mock implementation of ReservationRepository
type MockReservationRepository struct {
	SaveFunc       func(ctx context.Context, r *domain.Reservation) error
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Reservation, error)
	FindByCodeFunc func(ctx context.Context, code string) (*domain.Reservation, error)
	FindFunc       func(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
}

func (m *MockReservationRepository) Save(ctx context.Context, r *domain.Reservation) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return nil
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReservationRepository) FindByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *MockReservationRepository) Find(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, filter)
	}
	return nil, nil
}

// MockSuspensionRepository is a mock implementation of SuspensionRepository
type MockSuspensionRepository struct {
	FindByUserIDFunc func(ctx context.Context, userID string) (*domain.UserSuspension, error)
	SaveFunc         func(ctx context.Context, s *domain.UserSuspension) error
	DeleteFunc       func(ctx context.Context, userID string) error
}

func (m *MockSuspensionRepository) FindByUserID(ctx context.Context, userID string) (*domain.UserSuspension, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockSuspensionRepository) Save(ctx context.Context, s *domain.UserSuspension) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	return nil
}

func (m *MockSuspensionRepository) Delete(ctx context.Context, userID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	FindByIDFunc func(ctx context.Context, id string) (*domain.User, error)
	FindAllFunc  func(ctx context.Context) ([]domain.User, error)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}
