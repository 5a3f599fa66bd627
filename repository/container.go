package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/log"
)

var ctr = newContainer()

// RegisterFactory registers provided Factory within the container.
func RegisterFactory(f Factory) error {
	log.Debugf("Registering factory: '%s'", f.DriverName())
	return ctr.registerFactory(f)
}

// GetFactory gets the factory with given driver 'name'.
func GetFactory(name string) Factory {
	ctr.lock.RLock()
	defer ctr.lock.RUnlock()
	return ctr.factories[name]
}

// Drivers gets the sorted names of the registered factories.
func Drivers() []string {
	ctr.lock.RLock()
	defer ctr.lock.RUnlock()

	names := make([]string, 0, len(ctr.factories))
	for name := range ctr.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates the store with the factory registered for the 'cfg' driver.
func Open(ctx context.Context, cfg *config.Repository) (Store, error) {
	if cfg == nil {
		return nil, errors.New(class.ConfigValueNil, "provided nil repository config")
	}
	f := GetFactory(cfg.Driver)
	if f == nil {
		return nil, errors.Newf(class.RepositoryFactoryNotFound, "no factory registered for the driver: '%s'", cfg.Driver)
	}
	return f.New(ctx, cfg)
}

// container is the container for the store factories.
type container struct {
	factories map[string]Factory
	lock      sync.RWMutex
}

func newContainer() *container {
	return &container{factories: map[string]Factory{}}
}

func (c *container) registerFactory(f Factory) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	name := f.DriverName()
	if _, ok := c.factories[name]; ok {
		log.Debugf("Factory already registered: %s", name)
		return errors.Newf(class.RepositoryFactoryAlreadyRegistered, "factory: '%s' already registered", name)
	}
	c.factories[name] = f

	log.Debugf("Store Factory: '%s' registered successfully.", name)
	return nil
}
