package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionRecord persists the token/identity pair of one browser session.
type SessionRecord struct {
	SessionID string         `gorm:"primaryKey;size:64"`
	Token     string         `gorm:"type:text;not null"`
	Identity  datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

// TableName pins the table name used by the session store.
func (SessionRecord) TableName() string {
	return "portal_sessions"
}
