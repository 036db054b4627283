package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is one captured lead. The id is generated by the submitting
// client; created_at is assigned by the store; joined_whatsapp is only ever
// flipped by an external process.
type Contact struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Phone          string    `gorm:"not null" json:"phone"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	JoinedWhatsApp bool      `gorm:"column:joined_whatsapp;not null;default:false" json:"joined_whatsapp"`
}

func (Contact) TableName() string {
	return "contacts"
}
