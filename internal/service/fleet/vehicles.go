package fleet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// VehiclePatch carries optional vehicle updates; ownership never changes.
type VehiclePatch struct {
	Make            *string               `json:"make,omitempty"`
	Model           *string               `json:"model,omitempty"`
	ConnectorType   *domain.ConnectorType `json:"connector_type,omitempty"`
	BatteryKWh      *float64              `json:"battery_kwh,omitempty"`
	TypicalChargeKW *float64              `json:"typical_charge_kw,omitempty"`
	Nickname        *string               `json:"nickname,omitempty"`
}

func validateVehicle(v *domain.Vehicle) error {
	if v.Make == "" || v.Model == "" {
		return fmt.Errorf("make and model are required: %w", domain.ErrValidation)
	}
	if !v.ConnectorType.Valid() {
		return fmt.Errorf("unknown connector type %q: %w", v.ConnectorType, domain.ErrValidation)
	}
	if v.BatteryKWh <= 0 || v.TypicalChargeKW <= 0 {
		return fmt.Errorf("battery and charge rate must be positive: %w", domain.ErrValidation)
	}
	return nil
}

// AddVehicle registers a vehicle owned by ownerID
func (s *Service) AddVehicle(ctx context.Context, ownerID string, v domain.Vehicle) (*domain.Vehicle, error) {
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}
	v.ID = s.ids.NewID("v")
	v.OwnerUserID = ownerID
	if err := validateVehicle(&v); err != nil {
		return nil, err
	}
	if err := s.vehicles.Create(ctx, &v); err != nil {
		return nil, fmt.Errorf("failed to save vehicle: %w", err)
	}

	s.log.Info("Vehicle added", zap.String("vehicle_id", v.ID), zap.String("owner_id", ownerID))
	return &v, nil
}

func (s *Service) ownedVehicle(ctx context.Context, actorID, id string) (*domain.Vehicle, error) {
	v, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if v == nil {
		return nil, fmt.Errorf("vehicle %s: %w", id, domain.ErrNotFound)
	}
	if v.OwnerUserID != actorID {
		return nil, fmt.Errorf("vehicle %s is not owned by %s: %w", id, actorID, domain.ErrPolicyViolation)
	}
	return v, nil
}

// UpdateVehicle applies a patch; only the owner may edit.
func (s *Service) UpdateVehicle(ctx context.Context, actorID, id string, patch VehiclePatch) (*domain.Vehicle, error) {
	v, err := s.ownedVehicle(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if patch.Make != nil {
		v.Make = *patch.Make
	}
	if patch.Model != nil {
		v.Model = *patch.Model
	}
	if patch.ConnectorType != nil {
		v.ConnectorType = *patch.ConnectorType
	}
	if patch.BatteryKWh != nil {
		v.BatteryKWh = *patch.BatteryKWh
	}
	if patch.TypicalChargeKW != nil {
		v.TypicalChargeKW = *patch.TypicalChargeKW
	}
	if patch.Nickname != nil {
		v.Nickname = *patch.Nickname
	}
	if err := validateVehicle(v); err != nil {
		return nil, err
	}
	if err := s.vehicles.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to save vehicle: %w", err)
	}
	return v, nil
}

// RemoveVehicle deletes a vehicle; only the owner may remove it.
func (s *Service) RemoveVehicle(ctx context.Context, actorID, id string) error {
	if _, err := s.ownedVehicle(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	s.log.Info("Vehicle removed", zap.String("vehicle_id", id), zap.String("owner_id", actorID))
	return nil
}

// ListVehicles lists the vehicles owned by a user
func (s *Service) ListVehicles(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	return s.vehicles.FindByOwner(ctx, ownerID)
}
