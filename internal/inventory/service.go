package inventory

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"api_dealership/internal/apperr"
)

// Service provides vehicle inventory management on top of the relational store.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new inventory Service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// CreateInput carries the fields for a new vehicle.
type CreateInput struct {
	VIN           string
	Make          string
	Model         string
	Year          int
	PurchasePrice float64
	Status        Status
}

// UpdateInput carries a partial vehicle update; nil fields are left untouched.
type UpdateInput struct {
	VIN           *string
	Make          *string
	Model         *string
	Year          *int
	PurchasePrice *float64
	Status        *Status
}

// List returns vehicles, optionally filtered by exact status and a
// case-insensitive make substring.
func (s *Service) List(ctx context.Context, status, makeFilter string, skip, limit int) ([]*Vehicle, error) {
	if limit <= 0 {
		limit = 50
	}
	q := s.db.WithContext(ctx).Model(&Vehicle{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if makeFilter != "" {
		q = q.Where("LOWER(make) LIKE ?", "%"+strings.ToLower(makeFilter)+"%")
	}
	var vehicles []*Vehicle
	if err := q.Offset(skip).Limit(limit).Find(&vehicles).Error; err != nil {
		s.logger.Error("failed to list vehicles", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to list vehicles", err)
	}
	return vehicles, nil
}

// Get returns a single vehicle by id.
func (s *Service) Get(ctx context.Context, id uint) (*Vehicle, error) {
	var vehicle Vehicle
	if err := s.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "vehicle not found")
		}
		s.logger.Error("failed to get vehicle", zap.Uint("vehicle_id", id), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to get vehicle", err)
	}
	return &vehicle, nil
}

// Create adds a vehicle to inventory. The VIN must be unused.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Vehicle, error) {
	status := in.Status
	if status == "" {
		status = StatusAvailable
	}
	if !status.Valid() {
		return nil, apperr.Newf(apperr.KindValidation, "invalid vehicle status %q", status)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&Vehicle{}).Where("vin = ?", in.VIN).Count(&count).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to check VIN", err)
	}
	if count > 0 {
		return nil, apperr.New(apperr.KindConflict, "vehicle with this VIN already exists")
	}

	vehicle := &Vehicle{
		VIN:           in.VIN,
		Make:          in.Make,
		Model:         in.Model,
		Year:          in.Year,
		PurchasePrice: in.PurchasePrice,
		Status:        status,
	}
	if err := s.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		s.logger.Error("failed to create vehicle", zap.String("vin", in.VIN), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to create vehicle", err)
	}
	s.logger.Info("vehicle created", zap.Uint("vehicle_id", vehicle.ID), zap.String("vin", vehicle.VIN))
	return vehicle, nil
}

// Update overwrites only the supplied fields on a vehicle.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.VIN != nil {
		vehicle.VIN = *in.VIN
	}
	if in.Make != nil {
		vehicle.Make = *in.Make
	}
	if in.Model != nil {
		vehicle.Model = *in.Model
	}
	if in.Year != nil {
		vehicle.Year = *in.Year
	}
	if in.PurchasePrice != nil {
		vehicle.PurchasePrice = *in.PurchasePrice
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Newf(apperr.KindValidation, "invalid vehicle status %q", *in.Status)
		}
		vehicle.Status = *in.Status
	}

	if err := s.db.WithContext(ctx).Save(vehicle).Error; err != nil {
		s.logger.Error("failed to update vehicle", zap.Uint("vehicle_id", id), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to update vehicle", err)
	}
	return vehicle, nil
}

// Delete removes a vehicle from inventory.
func (s *Service) Delete(ctx context.Context, id uint) error {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(vehicle).Error; err != nil {
		s.logger.Error("failed to delete vehicle", zap.Uint("vehicle_id", id), zap.Error(err))
		return apperr.Wrap(apperr.KindStorage, "failed to delete vehicle", err)
	}
	s.logger.Info("vehicle deleted", zap.Uint("vehicle_id", id))
	return nil
}
