package config

import "time"

// Configer is the source of service settings. Keys are plain environment style
// names such as CLUB_SESSION_SECRET.
type Configer interface {
	LoadFromPath(path string) error
	Load() error
	GetKey(key string) string
	MustGetKey(key string) string
	GetKeyWithDefault(key, defaultValue string) string
	GetIntKey(key string) int
	MustGetIntKey(key string) int
	GetIntKeyWithDefault(key string, defaultValue int) int
	GetBoolKey(key string) bool
	GetDurationKeyWithDefault(key string, defaultValue time.Duration) time.Duration
}
