package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CategoryInfant   = "infant"
	CategoryGeneral  = "general"
	CategoryDiabetic = "diabetic"

	TierRegular = "regular"
	TierVIP     = "vip"
)

type MenuItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Category    string          `gorm:"not null;index" json:"category"` // "infant", "general", "diabetic"
	Tier        string          `gorm:"not null;index" json:"tier"`     // "regular", "vip"
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Available   bool            `gorm:"not null" json:"available"`
	Timestamp
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryInfant, CategoryGeneral, CategoryDiabetic:
		return true
	}
	return false
}

func ValidTier(tier string) bool {
	return tier == TierRegular || tier == TierVIP
}
