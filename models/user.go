// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`

	// Progression. XP is the spendable balance the reward shop deducts from;
	// LifetimeXP only ever grows and drives the level curve.
	Level       int `gorm:"default:1" json:"level"`
	XP          int `gorm:"default:0" json:"xp"`
	LifetimeXP  int `gorm:"default:0" json:"lifetime_xp"`
	FaithPoints int `gorm:"default:0" json:"faith_points"`

	// Stats
	LoginStreak     int `gorm:"default:0" json:"login_streak"`
	BestLoginStreak int `gorm:"default:0" json:"best_login_streak"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`
}
