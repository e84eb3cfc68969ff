package clients

import "time"

// VIPTier is an advisory client classification. It is assigned manually and is
// never derived from lifetime value.
type VIPTier string

const (
	TierStandard VIPTier = "Standard"
	TierGold     VIPTier = "Gold"
	TierPlatinum VIPTier = "Platinum"
	TierBlack    VIPTier = "Black"
)

// Valid reports whether t is one of the known VIP tiers.
func (t VIPTier) Valid() bool {
	switch t {
	case TierStandard, TierGold, TierPlatinum, TierBlack:
		return true
	}
	return false
}

// Client is a dealership customer. LifetimeValue is maintained by the sale
// recorder as the running sum of recorded sale prices.
type Client struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FirstName     string    `gorm:"size:50;not null" json:"first_name"`
	LastName      string    `gorm:"size:50;not null" json:"last_name"`
	Email         string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Phone         string    `gorm:"size:20" json:"phone"`
	LifetimeValue float64   `gorm:"not null;default:0" json:"lifetime_value"`
	VIPTier       VIPTier   `gorm:"column:vip_tier;size:20;not null;default:Standard" json:"vip_tier"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName pins the table name gorm uses for Client.
func (Client) TableName() string { return "clients" }
