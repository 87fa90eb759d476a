package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Retry configuration
const maxRetries = 3
const retryDelay = 2 * time.Minute

// CleanupExpiredFiles removes a file once it is older than the TTL.
func CleanupExpiredFiles(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		log.Printf("Expired export %s deleted", filePath)
	}
	return nil
}

// CleanupAllExpired sweeps the export directory and drops the matching
// cached download links from Redis.
func CleanupAllExpired(fileTTL time.Duration, redisClient *redis.Client) error {
	files, err := os.ReadDir(ExportDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading files directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filePath := fmt.Sprintf("%s/%s", ExportDir, file.Name())
		if err := CleanupExpiredFiles(filePath, fileTTL); err != nil {
			log.Printf("Error cleaning up file: %v", err)
		}
	}

	// Cached export links point at files that may just have been removed
	for _, resource := range []string{"stores_export", "users_export", "clients_export", "roles_export"} {
		if err := InvalidateCache(redisClient, resource); err != nil {
			return fmt.Errorf("error cleaning up cache: %v", err)
		}
	}

	return nil
}

// RunScheduledCleanup runs cleanup daily at 1 AM with retries.
func RunScheduledCleanup(redisClient *redis.Client) {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		log.Println("running scheduled cleanup task...")

		var retries int
		for retries < maxRetries {
			err := CleanupAllExpired(24*time.Hour, redisClient)
			if err == nil {
				log.Println("cleanup successful")
				return
			}
			log.Printf("cleanup failed: %v", err)
			retries++
			time.Sleep(retryDelay)
		}

		log.Printf("cleanup task failed after %d retries", retries)
	})

	c.Start()

	select {}
}
