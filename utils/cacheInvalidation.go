package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// InvalidateCache removes all cached keys for the given resource type.
func InvalidateCache(rdb *redis.Client, resourceType string) error {
	pattern := fmt.Sprintf("%s:*", resourceType)
	iter := rdb.Scan(context.Background(), 0, pattern, 0).Iterator()

	for iter.Next(context.Background()) {
		key := iter.Val()
		if err := rdb.Del(context.Background(), key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %v", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}

	return nil
}

// InvalidateCacheAsync invalidates the cache for a resource type without
// blocking the caller's request.
func InvalidateCacheAsync(rdb *redis.Client, resourceType string) {
	go func() {
		if err := InvalidateCache(rdb, resourceType); err != nil {
			log.Printf("Cache invalidation failed for resource type '%s': %v", resourceType, err)
		}
	}()
}
