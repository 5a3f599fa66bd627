package log

import (
	"sync"

	"github.com/neuronlabs/uni-logger"
)

var (
	modules     []*ModuleLogger
	modulesLock sync.Mutex
)

// subLogger is the logger that creates its own sub loggers.
type subLogger interface {
	SubLogger() unilogger.LeveledLogger
}

// levelGetter is the logger that exposes its level.
type levelGetter interface {
	GetLevel() unilogger.Level
}

// ModuleLogger is the logger used by the specific packages. It prefixes all
// messages with the module name and keeps its own level.
type ModuleLogger struct {
	Name string

	logger       unilogger.LeveledLogger
	debugLeveled unilogger.DebugLeveledLogger
	levelSetter  unilogger.LevelSetter
	own          bool

	level unilogger.Level
	lock  sync.RWMutex
}

// NewModuleLogger creates new module logger for given 'name' of the module and an optional 'logger'.
// Without the 'logger' the module writes to the sub logger of the default logger or,
// if it is not possible, directly to the default logger.
func NewModuleLogger(name string, moduleLogger ...unilogger.LeveledLogger) *ModuleLogger {
	m := &ModuleLogger{Name: name, level: Level()}

	switch {
	case len(moduleLogger) > 0:
		m.own = true
		m.setLogger(moduleLogger[0])
		if getter, ok := moduleLogger[0].(levelGetter); ok {
			m.level = getter.GetLevel()
		}
		if depthGetter, ok := moduleLogger[0].(unilogger.OutputDepthGetter); ok {
			if depthSetter, ok := moduleLogger[0].(unilogger.OutputDepthSetter); ok {
				depthSetter.SetOutputDepth(depthGetter.GetOutputDepth() + 1)
			}
		}
	default:
		if sub, ok := Logger().(subLogger); ok {
			m.setLogger(sub.SubLogger())
		}
	}

	modulesLock.Lock()
	modules = append(modules, m)
	modulesLock.Unlock()
	return m
}

// Level gets the module logger level.
func (m *ModuleLogger) Level() unilogger.Level {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.level
}

// SetLevel sets the module logger level.
func (m *ModuleLogger) SetLevel(level unilogger.Level) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.level = level
	if m.levelSetter != nil {
		m.levelSetter.SetLevel(level)
	}
}

// Debug3f writes the formatted debug3 log.
func (m *ModuleLogger) Debug3f(format string, args ...interface{}) {
	l, d, ok := m.writer(LDEBUG3)
	if !ok {
		return
	}
	format = m.prefix(format)
	switch {
	case d != nil:
		d.Debug3f(format, args...)
	case l != nil:
		l.Debugf(format, args...)
	default:
		Debug3f(format, args...)
	}
}

// Debug2f writes the formatted debug2 log.
func (m *ModuleLogger) Debug2f(format string, args ...interface{}) {
	l, d, ok := m.writer(LDEBUG2)
	if !ok {
		return
	}
	format = m.prefix(format)
	switch {
	case d != nil:
		d.Debug2f(format, args...)
	case l != nil:
		l.Debugf(format, args...)
	default:
		Debug2f(format, args...)
	}
}

// Debugf writes the formatted debug log.
func (m *ModuleLogger) Debugf(format string, args ...interface{}) {
	l, _, ok := m.writer(LDEBUG)
	if !ok {
		return
	}
	if l != nil {
		l.Debugf(m.prefix(format), args...)
	} else {
		Debugf(m.prefix(format), args...)
	}
}

// Infof writes the formatted info log.
func (m *ModuleLogger) Infof(format string, args ...interface{}) {
	l, _, ok := m.writer(LINFO)
	if !ok {
		return
	}
	if l != nil {
		l.Infof(m.prefix(format), args...)
	} else {
		Infof(m.prefix(format), args...)
	}
}

// Warningf writes the formatted warning log.
func (m *ModuleLogger) Warningf(format string, args ...interface{}) {
	l, _, ok := m.writer(LWARNING)
	if !ok {
		return
	}
	if l != nil {
		l.Warningf(m.prefix(format), args...)
	} else {
		Warningf(m.prefix(format), args...)
	}
}

// Errorf writes the formatted error log.
func (m *ModuleLogger) Errorf(format string, args ...interface{}) {
	l, _, ok := m.writer(LERROR)
	if !ok {
		return
	}
	if l != nil {
		l.Errorf(m.prefix(format), args...)
	} else {
		Errorf(m.prefix(format), args...)
	}
}

func (m *ModuleLogger) setLogger(l unilogger.LeveledLogger) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.logger = l
	m.debugLeveled, _ = l.(unilogger.DebugLeveledLogger)
	m.levelSetter, _ = l.(unilogger.LevelSetter)
	if m.levelSetter != nil {
		m.levelSetter.SetLevel(m.level)
	}
}

// writer returns the module writers and checks if the 'level' is enabled.
// Levels of the loggers that implement LevelSetter are checked by the loggers themselves.
func (m *ModuleLogger) writer(level unilogger.Level) (unilogger.LeveledLogger, unilogger.DebugLeveledLogger, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if m.levelSetter == nil && m.level != LUNKNOWN && m.level > level {
		return nil, nil, false
	}
	return m.logger, m.debugLeveled, true
}

func (m *ModuleLogger) prefix(format string) string {
	return "[" + m.Name + "] " + format
}
