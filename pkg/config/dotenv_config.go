package config

import (
	"os"

	"github.com/subosito/gotenv"
)

// DotenvConfig reads the process environment after loading a dotenv file into
// it. Variables already set in the environment win over the file.
type DotenvConfig struct {
	values
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{values: values{lookup: os.Getenv}, DotenvPath: path}
}

func (c *DotenvConfig) LoadFromPath(path string) error {
	c.DotenvPath = path
	return c.Load()
}

func (c *DotenvConfig) Load() error {
	if c.lookup == nil {
		c.lookup = os.Getenv
	}

	if c.DotenvPath == "" {
		return nil
	}

	return gotenv.Load(c.DotenvPath)
}
