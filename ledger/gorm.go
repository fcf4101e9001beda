package ledger

import (
	"fmt"
	"log"
	"time"

	"divinetemple/models"

	"gorm.io/gorm"
)

// UserLedger is the database-backed Ledger for one user row.
type UserLedger struct {
	db     *gorm.DB
	userID uint
}

func NewUserLedger(db *gorm.DB, userID uint) *UserLedger {
	return &UserLedger{db: db, userID: userID}
}

func (l *UserLedger) AwardXP(amount int, reason, kind string) error {
	if amount < 0 {
		return fmt.Errorf("negative xp award: %d", amount)
	}

	return l.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, l.userID).Error; err != nil {
			return fmt.Errorf("loading user %d: %w", l.userID, err)
		}

		oldLevel := user.Level
		user.XP += amount
		user.LifetimeXP += amount
		user.Level = LevelForLifetimeXP(user.LifetimeXP)

		for lvl := oldLevel + 1; lvl <= user.Level; lvl++ {
			user.FaithPoints += LevelReward(lvl)
		}

		user.UpdatedAt = time.Now()
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("saving user %d: %w", l.userID, err)
		}

		log.Printf("xp: +%d to user %d (%s, %s)", amount, l.userID, reason, kind)
		if user.Level > oldLevel {
			log.Printf("xp: user %d leveled up %d -> %d", l.userID, oldLevel, user.Level)
		}
		return nil
	})
}

func (l *UserLedger) Deduct(amount int) error {
	if amount < 0 {
		return fmt.Errorf("negative xp deduction: %d", amount)
	}

	return l.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, l.userID).Error; err != nil {
			return fmt.Errorf("loading user %d: %w", l.userID, err)
		}
		if user.XP < amount {
			return fmt.Errorf("%w: have %d, need %d", ErrInsufficientXP, user.XP, amount)
		}
		user.XP -= amount
		user.UpdatedAt = time.Now()
		return tx.Save(&user).Error
	})
}

func (l *UserLedger) Balance() (int, error) {
	var user models.User
	if err := l.db.Select("xp").First(&user, l.userID).Error; err != nil {
		return 0, fmt.Errorf("loading user %d: %w", l.userID, err)
	}
	return user.XP, nil
}

func (l *UserLedger) Progress() (int, int, error) {
	var user models.User
	if err := l.db.Select("level", "lifetime_xp").First(&user, l.userID).Error; err != nil {
		return 0, 0, fmt.Errorf("loading user %d: %w", l.userID, err)
	}
	return user.Level, user.LifetimeXP, nil
}
