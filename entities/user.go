package entities

import "github.com/google/uuid"

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	Role         string    `gorm:"not null;default:admin" json:"role"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Timestamp
}
