// handlers/leaderboard.go
package handlers

import (
	"strconv"

	"divinetemple/database"
	"divinetemple/middleware"
	"divinetemple/models"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Level       int    `json:"level"`
	LifetimeXP  int    `json:"lifetime_xp"`
	LoginStreak int    `json:"login_streak"`
}

// GetLeaderboard returns the top users ranked by lifetime XP. Guests are
// excluded; spendable XP is not a ranking signal since it drops on every
// shop purchase.
func GetLeaderboard(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "25"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 25
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database not available"})
	}

	var users []models.User
	if err := db.Where("is_guest = ?", false).
		Order("lifetime_xp DESC, id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			UserID:      u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Avatar:      u.Avatar,
			Level:       u.Level,
			LifetimeXP:  u.LifetimeXP,
			LoginStreak: u.LoginStreak,
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"leaderboard": entries,
	})
}

// GetMyRank returns the requesting user's position on the lifetime XP
// ladder.
func GetMyRank(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database not available"})
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var ahead int64
	if err := db.Model(&models.User{}).
		Where("is_guest = ? AND lifetime_xp > ?", false, user.LifetimeXP).
		Count(&ahead).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute rank"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"rank":        ahead + 1,
		"level":       user.Level,
		"lifetime_xp": user.LifetimeXP,
	})
}
