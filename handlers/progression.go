// handlers/progression.go
package handlers

import (
	"divinetemple/database"
	"divinetemple/ledger"
	"divinetemple/middleware"
	"divinetemple/models"
	"divinetemple/progression"
	"divinetemple/services"

	"github.com/gofiber/fiber/v2"
)

type RecordActivityRequest struct {
	Counters map[string]any `json:"counters"`
}

type AwardXPRequest struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// RecordActivity folds an activity delta (trivia round, journal entry,
// meditation minutes...) into the user's counters and runs a full
// evaluation pass: achievements, daily quests and weekly quests.
func RecordActivity(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req RecordActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Counters) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No activity counters provided"})
	}

	registry := services.GetEngineRegistry()
	engine := registry.Progression(userID)

	delta := progression.Stats(req.Counters)
	engine.AddCounters(delta)

	achievements := engine.EvaluateAchievements(nil)
	daily := engine.EvaluateDailyQuests(nil)
	weekly := engine.EvaluateWeeklyQuests(nil)

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"new_achievements":  achievements,
		"completed_daily":   daily,
		"completed_weekly":  weekly,
		"level":             user.Level,
		"xp":                user.XP,
		"lifetime_xp":       user.LifetimeXP,
		"faith_points":      user.FaithPoints,
		"xp_for_next_level": ledger.XPForLevel(user.Level + 1),
	})
}

// AwardXP grants a raw XP amount, scaled by any active shop boosters.
func AwardXP(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req AwardXPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "XP amount must be positive"})
	}

	registry := services.GetEngineRegistry()
	multiplier := registry.Shop(userID).ActiveBoosterMultiplier()
	amount := int(float64(req.Amount) * multiplier)

	db := database.GetDB()
	led := ledger.NewUserLedger(db, userID)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}
	oldLevel := user.Level

	reason := req.Reason
	if reason == "" {
		reason = "activity"
	}
	if err := led.AwardXP(amount, reason, "activity"); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to award XP"})
	}

	// Level-gated achievements may now pass
	registry.Progression(userID).EvaluateAchievements(nil)

	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"xp_awarded":        amount,
		"base_amount":       req.Amount,
		"multiplier":        multiplier,
		"new_level":         user.Level,
		"leveled_up":        user.Level > oldLevel,
		"current_xp":        user.XP,
		"lifetime_xp":       user.LifetimeXP,
		"xp_for_next_level": ledger.XPForLevel(user.Level + 1),
		"reason":            reason,
	})
}

// GetProgression returns the level card plus quest and achievement tallies.
func GetProgression(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	engine := services.GetEngineRegistry().Progression(userID)
	// Run the reset transitions so stale completions never leak out
	engine.EvaluateDailyQuests(nil)
	engine.EvaluateWeeklyQuests(nil)
	rec := engine.Snapshot()

	xpToNext := ledger.XPForLevel(user.Level + 1)

	return c.JSON(fiber.Map{
		"success":               true,
		"level":                 user.Level,
		"xp":                    user.XP,
		"lifetime_xp":           user.LifetimeXP,
		"xp_for_next_level":     xpToNext,
		"faith_points":          user.FaithPoints,
		"login_streak":          user.LoginStreak,
		"best_login_streak":     user.BestLoginStreak,
		"achievements_total":    len(engine.Catalog()),
		"achievements_unlocked": len(rec.UnlockedAchievements),
		"daily_completed":       rec.CompletedDailyQuests,
		"weekly_completed":      rec.CompletedWeeklyQuests,
	})
}

// GetAchievements returns the full catalog with per-user unlocked flags.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	engine := services.GetEngineRegistry().Progression(userID)
	rec := engine.Snapshot()

	unlockedSet := make(map[string]bool, len(rec.UnlockedAchievements))
	for _, id := range rec.UnlockedAchievements {
		unlockedSet[id] = true
	}

	catalog := engine.Catalog()
	achievements := make([]fiber.Map, 0, len(catalog))
	for _, a := range catalog {
		achievements = append(achievements, fiber.Map{
			"id":          a.ID,
			"name":        a.Name,
			"description": a.Description,
			"category":    a.Category,
			"xp_reward":   a.XPReward,
			"unlock_text": a.UnlockText,
			"unlocked":    unlockedSet[a.ID],
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"total":        len(catalog),
		"unlocked":     len(rec.UnlockedAchievements),
	})
}

// CheckAchievements forces an evaluation pass without adding counters.
func CheckAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	engine := services.GetEngineRegistry().Progression(userID)
	unlocked := engine.EvaluateAchievements(nil)

	return c.JSON(fiber.Map{
		"success":          true,
		"new_achievements": unlocked,
	})
}

// GetQuests returns the daily and weekly boards with completion flags.
// The period reset transitions run before the boards are read.
func GetQuests(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	engine := services.GetEngineRegistry().Progression(userID)
	engine.EvaluateDailyQuests(nil)
	engine.EvaluateWeeklyQuests(nil)
	rec := engine.Snapshot()

	return c.JSON(fiber.Map{
		"success": true,
		"daily":   questBoard(engine.DailyQuests(), rec.CompletedDailyQuests),
		"weekly":  questBoard(engine.WeeklyQuests(), rec.CompletedWeeklyQuests),
	})
}

func questBoard(quests []progression.Quest, completed []string) []fiber.Map {
	completedSet := make(map[string]bool, len(completed))
	for _, id := range completed {
		completedSet[id] = true
	}

	board := make([]fiber.Map, 0, len(quests))
	for _, q := range quests {
		board = append(board, fiber.Map{
			"id":          q.ID,
			"name":        q.Name,
			"description": q.Description,
			"xp_reward":   q.XPReward,
			"completed":   completedSet[q.ID],
		})
	}
	return board
}
