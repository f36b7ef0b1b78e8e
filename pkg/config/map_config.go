package config

import (
	"fmt"
	"sync"
)

// MapConfig holds settings in memory. Tests use it to configure packages without
// touching the environment.
type MapConfig struct {
	values
	configValues sync.Map
}

func NewMapConfig(entries map[string]string) *MapConfig {
	c := &MapConfig{}
	c.values = values{lookup: c.load}

	for key, entry := range entries {
		c.configValues.Store(key, entry)
	}

	return c
}

func (c *MapConfig) load(key string) string {
	v, ok := c.configValues.Load(key)
	if !ok || v == nil {
		return ""
	}

	return v.(string)
}

// Set adds or replaces a key.
func (c *MapConfig) Set(key, value string) {
	c.configValues.Store(key, value)
}

func (c *MapConfig) LoadFromPath(_ string) error {
	return fmt.Errorf("LoadFromPath not supported for MapConfig")
}

func (c *MapConfig) Load() error {
	return nil
}
