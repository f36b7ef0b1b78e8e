package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
)

// values implements the typed accessors of Configer on top of a single lookup
// function. Each Configer embeds one.
type values struct {
	lookup func(key string) string
}

func (v values) GetKey(key string) string {
	return v.lookup(key)
}

func (v values) MustGetKey(key string) string {
	val := v.lookup(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (v values) GetKeyWithDefault(key, defaultValue string) string {
	if val := v.lookup(key); val != "" {
		return val
	}

	return defaultValue
}

func (v values) GetIntKey(key string) int {
	return v.GetIntKeyWithDefault(key, 0)
}

func (v values) MustGetIntKey(key string) int {
	intVal, err := strconv.Atoi(v.lookup(key))
	if err != nil {
		log.Fatalf("Required config key either doesn't exist or isn't an int: '%s': %s", key, err)
	}

	return intVal
}

func (v values) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(v.lookup(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}

// GetBoolKey treats "1", "true", "yes" and "on" (any case) as true.
func (v values) GetBoolKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(v.lookup(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetDurationKeyWithDefault accepts either a Go duration ("90m") or a bare
// number of seconds.
func (v values) GetDurationKeyWithDefault(key string, defaultValue time.Duration) time.Duration {
	val := strings.TrimSpace(v.lookup(key))
	if val == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(val); err == nil {
		return d
	}

	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}

	log.Warnf("Config key '%s' has invalid duration '%s', using %s", key, val, defaultValue)
	return defaultValue
}
