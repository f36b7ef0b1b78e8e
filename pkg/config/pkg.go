// Package config gives the rest of the service one place to read settings from.
// The package level functions delegate to the current Configer, a DotenvConfig
// unless SetConfig replaced it.
package config

import (
	"os"
	"time"
)

var configer Configer = &DotenvConfig{values: values{lookup: os.Getenv}}

func SetConfig(c Configer) {
	configer = c
}

func GetConfig() Configer {
	return configer
}

func LoadFromPath(path string) error {
	return configer.LoadFromPath(path)
}

func Load() error {
	return configer.Load()
}

func GetKey(key string) string {
	return configer.GetKey(key)
}

func MustGetKey(key string) string {
	return configer.MustGetKey(key)
}

func GetKeyWithDefault(key, defaultValue string) string {
	return configer.GetKeyWithDefault(key, defaultValue)
}

func GetIntKey(key string) int {
	return configer.GetIntKey(key)
}

func MustGetIntKey(key string) int {
	return configer.MustGetIntKey(key)
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}

func GetBoolKey(key string) bool {
	return configer.GetBoolKey(key)
}

func GetDurationKeyWithDefault(key string, defaultValue time.Duration) time.Duration {
	return configer.GetDurationKeyWithDefault(key, defaultValue)
}
