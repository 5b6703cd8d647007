package logger

import "sync"

// pinned holds loggers registered for a component name. Unpinned
// components derive from the global logger on every Get, so a later Init
// is picked up without re-registering.
var pinned sync.Map // name -> *Logger

// Register pins l as the logger returned by Get(name).
func Register(name string, l *Logger) {
	pinned.Store(name, l)
}

// Unregister removes a pinned logger.
func Unregister(name string) {
	pinned.Delete(name)
}

// Get returns the logger for a component: the pinned one if any, the
// global logger tagged with the component name otherwise.
func Get(name string) *Logger {
	if l, ok := pinned.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}
