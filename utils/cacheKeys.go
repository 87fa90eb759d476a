package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// GenerateHash generates two hashes: one for searching (without timestamp)
// and one for storage (with timestamp). Filter keys are sorted so the same
// query always produces the same search key.
func GenerateHash(resourceType string, filters map[string]string, page, pageSize int) (string, string) {
	timestamp := Today().Unix()

	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	query := fmt.Sprintf("resource=%s&page=%d&page_size=%d", resourceType, page, pageSize)
	for _, key := range keys {
		query += fmt.Sprintf("&%s=%s", key, filters[key])
	}

	searchHash := sha256.Sum256([]byte(query))
	storageHash := sha256.Sum256([]byte(fmt.Sprintf("%s&timestamp=%d", query, timestamp)))

	searchKey := fmt.Sprintf("%s:%s", resourceType, hex.EncodeToString(searchHash[:]))
	storageKey := fmt.Sprintf("%s:%s", resourceType, hex.EncodeToString(storageHash[:]))

	return searchKey, storageKey
}

// FindMatchingFile scans Redis for a cached file path recorded under the
// search hash.
func FindMatchingFile(rdb *redis.Client, searchHash string) (string, error) {
	iter := rdb.Scan(context.Background(), 0, fmt.Sprintf("*%s*", searchHash), 1).Iterator()
	for iter.Next(context.Background()) {
		filePath, err := rdb.Get(context.Background(), iter.Val()).Result()
		if err == nil {
			return filePath, nil
		}
	}
	if err := iter.Err(); err != nil {
		return "", err
	}

	return "", redis.Nil
}
