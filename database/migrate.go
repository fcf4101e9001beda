// database/migrate.go - Database Migration Runner
package database

import (
	"divinetemple/models"
	"log"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.ProgressDocument{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes beyond what the model tags declare
func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_lifetime_xp ON users(lifetime_xp DESC)")

	// Progress document housekeeping queries scan by update time
	db.Exec("CREATE INDEX IF NOT EXISTS idx_progress_documents_updated ON progress_documents(updated_at)")

	log.Println("✅ Indexes created successfully")
}
