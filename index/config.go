package index

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
)

// Config configures a Store.
type Config struct {
	Path     string // directory holding the badger files; ignored when InMemory
	InMemory bool
	Logger   *logrus.Logger
}

func (c *Config) checkConfig() error {
	if c.InMemory {
		return nil
	}
	if c.Path == "" {
		return errors.New("no path provided in configuration")
	}

	info, err := os.Stat(c.Path)
	if os.IsNotExist(err) {
		return errors.New("path does not exist")
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("path is not a directory")
	}
	return nil
}
