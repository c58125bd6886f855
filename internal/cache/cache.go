// Package cache holds the OCR result cache: identical screenshots are
// uploaded repeatedly while a student retries a question, and a vision
// call is the most expensive operation in the system.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a TTL'd byte cache. Implementations must be safe for concurrent
// readers and writers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
	Clear()
}

// ContentKey derives a cache key from raw content (image bytes).
func ContentKey(content []byte) string {
	hash := sha256.Sum256(content)
	return "qna:ocr:v1:" + hex.EncodeToString(hash[:])
}
