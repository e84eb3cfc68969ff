package inventory

import "time"

// Status is the lifecycle state of a vehicle on the lot.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusSold      Status = "Sold"
	StatusInTransit Status = "In-Transit"
	StatusBooked    Status = "Booked"
)

// Valid reports whether s is one of the known vehicle statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusInTransit, StatusBooked:
		return true
	}
	return false
}

// Vehicle is one unit of dealership inventory. The VIN is the immutable
// business key; Status moves to Sold only through the sale recorder.
type Vehicle struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	VIN           string    `gorm:"column:vin;size:17;uniqueIndex;not null" json:"vin"`
	Make          string    `gorm:"size:50;not null" json:"make"`
	Model         string    `gorm:"size:100;not null" json:"model"`
	Year          int       `gorm:"not null" json:"year"`
	PurchasePrice float64   `gorm:"not null" json:"purchase_price"`
	Status        Status    `gorm:"size:20;not null;default:Available" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName pins the table name gorm uses for Vehicle.
func (Vehicle) TableName() string { return "vehicles" }
