package utils

import (
	"log"
	"time"

	"quizroom/database"
	"quizroom/models"

	"github.com/robfig/cron/v3"
)

// StartTokenCleanup schedules the hourly purge of expired
// password-reset tokens.
func StartTokenCleanup() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("@hourly", CleanupExpiredResetTokens); err != nil {
		log.Printf("[TOKEN-SCHEDULER] failed to register cleanup job: %v", err)
		return c
	}
	c.Start()
	log.Println("[TOKEN-SCHEDULER] expired reset-token cleanup scheduled hourly")
	return c
}

// CleanupExpiredResetTokens clears reset tokens whose expiry has passed
// so stale links can never be replayed.
func CleanupExpiredResetTokens() {
	result := database.Database.Db.Model(&models.User{}).
		Where("reset_password_token <> '' AND reset_password_expire < ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_password_token":  "",
			"reset_password_expire": nil,
		})
	if result.Error != nil {
		log.Printf("[TOKEN-SCHEDULER] cleanup failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[TOKEN-SCHEDULER] cleared %d expired reset tokens", result.RowsAffected)
	}
}
