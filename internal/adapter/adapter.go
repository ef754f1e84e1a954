package adapter

import (
	"fmt"
	"sort"

	"PropScope/internal/config"
	"PropScope/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// Factory builds a stats provider from the upstream config. cache may be nil.
type Factory func(cfg *config.UpstreamConfig, logger *logrus.Logger, cache interfaces.PageCache) interfaces.StatsProvider

// ========== provider factory registry ==========
var factoryRegistry = make(map[string]Factory)

// Register called from a provider package's init
func Register(name string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("stats provider %s registered a nil factory", name))
	}
	if _, exists := factoryRegistry[name]; exists {
		logrus.Warnf("stats provider %s already registered, overriding", name)
	}
	factoryRegistry[name] = factory
}

// GetFactory looks up a registered provider
func GetFactory(name string) (Factory, bool) {
	factory, ok := factoryRegistry[name]
	return factory, ok
}

// ListFactories registered provider names, sorted
func ListFactories() []string {
	names := make([]string, 0, len(factoryRegistry))
	for n := range factoryRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
