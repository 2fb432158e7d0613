package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	LastName     string    `json:"lastname,omitempty"`
	Phone        string    `gorm:"uniqueIndex;not null" json:"phone"`
	Email        *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	Orders       []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
