package logging

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/respirex/respirex-backend/internal/models"
)

const (
	retentionDays   = 30
	cleanupInterval = 24 * time.Hour
)

// StartCleanup runs a daily goroutine that prunes system_logs beyond the
// retention window. Closing done stops it.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retentionDays)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("log cleanup completed", "deleted", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}
