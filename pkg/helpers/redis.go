package helpers

import (
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

var redisGlobEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

// EscapeRedisGlob quotes glob metacharacters so s matches literally in a
// SCAN/KEYS pattern.
func EscapeRedisGlob(s string) string {
	return redisGlobEscaper.Replace(s)
}
