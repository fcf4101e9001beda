// Package notify is the presentation port for celebratory events. Calls
// are fire and forget: a failed delivery never rolls back engine state.
package notify

// Kind labels what a notification celebrates.
type Kind string

const (
	KindAchievement Kind = "achievement"
	KindDailyQuest  Kind = "daily_quest"
	KindWeeklyQuest Kind = "weekly_quest"
	KindPurchase    Kind = "purchase"
)

type Notifier interface {
	Notify(kind Kind, item any)
}

// Discard drops all notifications. Used in tests and headless tools.
type Discard struct{}

func (Discard) Notify(Kind, any) {}
