package sales

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"api_dealership/internal/apperr"
	"api_dealership/internal/clients"
	"api_dealership/internal/inventory"
)

// Service records and manages sales. Record is the single place where the
// vehicle status, the client lifetime value and the sale row change together.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new sales Service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// RecordInput carries the fields for recording a sale.
type RecordInput struct {
	VehicleID  uint
	ClientID   uint
	SalePrice  float64
	SaleDate   time.Time
	Commission float64
}

// UpdateInput carries a partial sale update; nil fields are left untouched.
type UpdateInput struct {
	VehicleID  *uint
	ClientID   *uint
	SalePrice  *float64
	SaleDate   *time.Time
	Commission *float64
}

// Record validates the request and then, in a single transaction, creates the
// sale row, flips the vehicle status to Sold and adds the sale price to the
// client's lifetime value. Either all three writes commit or none do. The
// status flip is guarded against the current status inside the transaction, so
// of two concurrent sales on the same vehicle exactly one wins; the other gets
// a conflict.
func (s *Service) Record(ctx context.Context, in RecordInput) (*Sale, error) {
	if in.SalePrice <= 0 {
		return nil, apperr.New(apperr.KindValidation, "sale price must be greater than zero")
	}
	if in.Commission < 0 {
		return nil, apperr.New(apperr.KindValidation, "commission must not be negative")
	}
	if in.SaleDate.IsZero() {
		return nil, apperr.New(apperr.KindValidation, "sale date is required")
	}

	var sale *Sale
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle inventory.Vehicle
		if err := tx.First(&vehicle, in.VehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "vehicle not found")
			}
			return apperr.Wrap(apperr.KindStorage, "failed to load vehicle", err)
		}
		if vehicle.Status == inventory.StatusSold {
			return apperr.New(apperr.KindConflict, "vehicle is already sold")
		}

		var client clients.Client
		if err := tx.First(&client, in.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "client not found")
			}
			return apperr.Wrap(apperr.KindStorage, "failed to load client", err)
		}

		// Guarded flip: the WHERE clause re-checks the status so a concurrent
		// transaction that sold the vehicle first leaves nothing to update.
		res := tx.Model(&inventory.Vehicle{}).
			Where("id = ? AND status <> ?", vehicle.ID, inventory.StatusSold).
			Update("status", inventory.StatusSold)
		if res.Error != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to mark vehicle sold", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindConflict, "vehicle is already sold")
		}

		if err := tx.Model(&clients.Client{}).
			Where("id = ?", client.ID).
			UpdateColumn("lifetime_value", gorm.Expr("lifetime_value + ?", in.SalePrice)).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to update client lifetime value", err)
		}

		sale = &Sale{
			VehicleID:  in.VehicleID,
			ClientID:   in.ClientID,
			SalePrice:  in.SalePrice,
			SaleDate:   datatypes.Date(in.SaleDate),
			Commission: in.Commission,
		}
		if err := tx.Create(sale).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to create sale", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to record sale",
			zap.Uint("vehicle_id", in.VehicleID),
			zap.Uint("client_id", in.ClientID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.Uint("sale_id", sale.ID),
		zap.Uint("vehicle_id", sale.VehicleID),
		zap.Uint("client_id", sale.ClientID),
		zap.Float64("sale_price", sale.SalePrice),
	)
	return sale, nil
}

// Update overwrites only the supplied fields on the sale row. It deliberately
// leaves the vehicle status and the client lifetime value as they were
// recorded, even when the price or the references change.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*Sale, error) {
	sale, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.VehicleID != nil {
		sale.VehicleID = *in.VehicleID
	}
	if in.ClientID != nil {
		sale.ClientID = *in.ClientID
	}
	if in.SalePrice != nil {
		if *in.SalePrice <= 0 {
			return nil, apperr.New(apperr.KindValidation, "sale price must be greater than zero")
		}
		sale.SalePrice = *in.SalePrice
	}
	if in.SaleDate != nil {
		sale.SaleDate = datatypes.Date(*in.SaleDate)
	}
	if in.Commission != nil {
		if *in.Commission < 0 {
			return nil, apperr.New(apperr.KindValidation, "commission must not be negative")
		}
		sale.Commission = *in.Commission
	}

	if err := s.db.WithContext(ctx).Save(sale).Error; err != nil {
		s.logger.Error("failed to update sale", zap.Uint("sale_id", id), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to update sale", err)
	}
	return sale, nil
}

// Delete removes the sale row. The vehicle stays Sold and the client keeps the
// accumulated lifetime value.
func (s *Service) Delete(ctx context.Context, id uint) error {
	sale, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(sale).Error; err != nil {
		s.logger.Error("failed to delete sale", zap.Uint("sale_id", id), zap.Error(err))
		return apperr.Wrap(apperr.KindStorage, "failed to delete sale", err)
	}
	s.logger.Info("sale deleted", zap.Uint("sale_id", id))
	return nil
}

// List returns sales, most recent sale date first.
func (s *Service) List(ctx context.Context, skip, limit int) ([]*Sale, error) {
	if limit <= 0 {
		limit = 50
	}
	var result []*Sale
	if err := s.db.WithContext(ctx).
		Order("sale_date DESC").
		Offset(skip).Limit(limit).
		Find(&result).Error; err != nil {
		s.logger.Error("failed to list sales", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to list sales", err)
	}
	return result, nil
}

// Get returns a single sale by id.
func (s *Service) Get(ctx context.Context, id uint) (*Sale, error) {
	var sale Sale
	if err := s.db.WithContext(ctx).First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "sale not found")
		}
		s.logger.Error("failed to get sale", zap.Uint("sale_id", id), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to get sale", err)
	}
	return &sale, nil
}

// All returns the complete sale log ordered by sale date ascending. Analytics
// recomputes from this snapshot on every call.
func (s *Service) All(ctx context.Context) ([]*Sale, error) {
	var result []*Sale
	if err := s.db.WithContext(ctx).Order("sale_date ASC, id ASC").Find(&result).Error; err != nil {
		s.logger.Error("failed to load sale log", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to load sale log", err)
	}
	return result, nil
}
