package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var Path = "gallery.yaml"

var instance *GalleryConfig
var instanceLock = &sync.RWMutex{}
var singletonLock = &sync.Once{}

// LoadFrom reads the config at the given path over top of the defaults. A default
// config is written if the file does not exist yet.
func LoadFrom(p string) (*GalleryConfig, error) {
	c := NewDefaultConfig()

	_, err := os.Stat(p)
	exists := err == nil || !os.IsNotExist(err)
	if !exists {
		fmt.Println("Generating new configuration...")
		configBytes, err := yaml.Marshal(c)
		if err != nil {
			return nil, err
		}
		if err = os.WriteFile(p, configBytes, 0644); err != nil {
			return nil, err
		}
	}

	logrus.Info("Loading config file: ", p)
	buffer, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(buffer, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func Get() *GalleryConfig {
	instanceLock.RLock()
	c := instance
	instanceLock.RUnlock()
	if c != nil {
		return c
	}

	singletonLock.Do(func() {
		c, err := LoadFrom(Path)
		if err != nil {
			logrus.Fatal(err)
		}
		set(c)
	})

	instanceLock.RLock()
	defer instanceLock.RUnlock()
	return instance
}

func set(c *GalleryConfig) {
	instanceLock.Lock()
	instance = c
	instanceLock.Unlock()
}

func SetForTesting(c GalleryConfig) {
	singletonLock.Do(func() {})
	set(&c)
}
