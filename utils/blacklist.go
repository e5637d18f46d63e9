package utils

import (
	"sync"
	"time"
)

// token yang sudah logout disimpan sampai masa berlakunya habis
var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.Mutex
)

func BlacklistToken(token string, expiresAt time.Time) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()

	now := time.Now()
	for t, exp := range blacklistedTokens {
		if now.After(exp) {
			delete(blacklistedTokens, t)
		}
	}
	blacklistedTokens[token] = expiresAt
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()

	expiry, exists := blacklistedTokens[token]
	if !exists {
		return false
	}
	if time.Now().Before(expiry) {
		return true
	}
	delete(blacklistedTokens, token)
	return false
}
