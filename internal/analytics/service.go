package analytics

import (
	"context"

	"go.uber.org/zap"

	"api_dealership/internal/sales"
)

// SaleLog is the slice of the sales service the analytics read path needs.
type SaleLog interface {
	All(ctx context.Context) ([]*sales.Sale, error)
}

// Service derives quarterly aggregates and insights from the live sale log.
// Every call recomputes from a fresh snapshot; there is no cache to go stale.
type Service struct {
	log    SaleLog
	logger *zap.Logger
}

// NewService creates a new analytics Service.
func NewService(log SaleLog, logger *zap.Logger) *Service {
	return &Service{log: log, logger: logger}
}

// Quarterly returns the per-quarter aggregates, ascending by (year, quarter).
func (s *Service) Quarterly(ctx context.Context) ([]QuarterlyAggregate, error) {
	saleLog, err := s.log.All(ctx)
	if err != nil {
		return nil, err
	}
	aggregates := BucketSales(saleLog)
	s.logger.Debug("quarterly aggregates computed",
		zap.Int("sales", len(saleLog)),
		zap.Int("quarters", len(aggregates)),
	)
	return aggregates, nil
}

// Insights returns the max/min revenue quarters over the full aggregate
// series. With no sales recorded yet it returns the N/A sentinel.
func (s *Service) Insights(ctx context.Context) (Insights, error) {
	aggregates, err := s.Quarterly(ctx)
	if err != nil {
		return Insights{}, err
	}
	return ExtractInsights(aggregates), nil
}
