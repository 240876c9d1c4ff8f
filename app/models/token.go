package models

import "time"

// RevokedToken is one blacklisted refresh-token jti. The unique index makes
// concurrent logouts with the same token converge on a single row; rows
// past ExpiresAt are garbage (the token could no longer mint anyway) and a
// periodic cleanup may drop them.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	JTI       string    `gorm:"column:jti;uniqueIndex;size:36;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	RevokedAt time.Time `gorm:"autoCreateTime"`
}

func (RevokedToken) TableName() string { return "revoked_tokens" }
