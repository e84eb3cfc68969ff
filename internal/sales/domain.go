package sales

import (
	"time"

	"gorm.io/datatypes"
)

// Sale represents one completed vehicle sale. It holds weak references to the
// vehicle and client rows; recording a sale is the only operation that also
// mutates those rows, and it does so atomically.
type Sale struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	VehicleID  uint           `gorm:"not null;index" json:"vehicle_id"`
	ClientID   uint           `gorm:"not null;index" json:"client_id"`
	SalePrice  float64        `gorm:"not null" json:"sale_price"`
	SaleDate   datatypes.Date `gorm:"not null" json:"sale_date"`
	Commission float64        `gorm:"not null" json:"commission"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TableName pins the table name gorm uses for Sale.
func (Sale) TableName() string { return "sales" }

// Date returns the sale date as a plain time.Time.
func (s *Sale) Date() time.Time { return time.Time(s.SaleDate) }
