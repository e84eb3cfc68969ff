package clients

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"api_dealership/internal/apperr"
)

// Service provides client record management on top of the relational store.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new clients Service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// CreateInput carries the fields for a new client.
type CreateInput struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	LifetimeValue float64
	VIPTier       VIPTier
}

// UpdateInput carries a partial client update; nil fields are left untouched.
type UpdateInput struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Phone         *string
	LifetimeValue *float64
	VIPTier       *VIPTier
}

// List returns clients ordered by lifetime value, highest first, optionally
// filtered by VIP tier.
func (s *Service) List(ctx context.Context, vipTier string, skip, limit int) ([]*Client, error) {
	if limit <= 0 {
		limit = 50
	}
	q := s.db.WithContext(ctx).Model(&Client{})
	if vipTier != "" {
		q = q.Where("vip_tier = ?", vipTier)
	}
	var result []*Client
	if err := q.Order("lifetime_value DESC").Offset(skip).Limit(limit).Find(&result).Error; err != nil {
		s.logger.Error("failed to list clients", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to list clients", err)
	}
	return result, nil
}

// Get returns a single client by id.
func (s *Service) Get(ctx context.Context, id uint) (*Client, error) {
	var client Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "client not found")
		}
		s.logger.Error("failed to get client", zap.Uint("client_id", id), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to get client", err)
	}
	return &client, nil
}

// Create registers a new client. The email must be unused.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Client, error) {
	tier := in.VIPTier
	if tier == "" {
		tier = TierStandard
	}
	if !tier.Valid() {
		return nil, apperr.Newf(apperr.KindValidation, "invalid VIP tier %q", tier)
	}
	if in.LifetimeValue < 0 {
		return nil, apperr.New(apperr.KindValidation, "lifetime value must not be negative")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&Client{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to check email", err)
	}
	if count > 0 {
		return nil, apperr.New(apperr.KindConflict, "client with this email already exists")
	}

	client := &Client{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Phone:         in.Phone,
		LifetimeValue: in.LifetimeValue,
		VIPTier:       tier,
	}
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		s.logger.Error("failed to create client", zap.String("email", in.Email), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to create client", err)
	}
	s.logger.Info("client created", zap.Uint("client_id", client.ID))
	return client, nil
}

// Update overwrites only the supplied fields on a client. A manual lifetime
// value override is allowed here; the sale recorder otherwise owns that field.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		client.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		client.LastName = *in.LastName
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.LifetimeValue != nil {
		if *in.LifetimeValue < 0 {
			return nil, apperr.New(apperr.KindValidation, "lifetime value must not be negative")
		}
		client.LifetimeValue = *in.LifetimeValue
	}
	if in.VIPTier != nil {
		if !in.VIPTier.Valid() {
			return nil, apperr.Newf(apperr.KindValidation, "invalid VIP tier %q", *in.VIPTier)
		}
		client.VIPTier = *in.VIPTier
	}

	if err := s.db.WithContext(ctx).Save(client).Error; err != nil {
		s.logger.Error("failed to update client", zap.Uint("client_id", id), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindStorage, "failed to update client", err)
	}
	return client, nil
}

// Delete removes a client record.
func (s *Service) Delete(ctx context.Context, id uint) error {
	client, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(client).Error; err != nil {
		s.logger.Error("failed to delete client", zap.Uint("client_id", id), zap.Error(err))
		return apperr.Wrap(apperr.KindStorage, "failed to delete client", err)
	}
	s.logger.Info("client deleted", zap.Uint("client_id", id))
	return nil
}
