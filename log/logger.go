package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/neuronlabs/uni-logger"

	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
)

const (
	// LDEBUG3 is the logger DEBUG3 level.
	LDEBUG3 = unilogger.DEBUG3
	// LDEBUG2 is the logger DEBUG2 level.
	LDEBUG2 = unilogger.DEBUG2
	// LDEBUG is the logger DEBUG level.
	LDEBUG = unilogger.DEBUG
	// LINFO is the logger INFO level.
	LINFO = unilogger.INFO
	// LWARNING is the logger WARNING level.
	LWARNING = unilogger.WARNING
	// LERROR is the logger ERROR level.
	LERROR = unilogger.ERROR
	// LCRITICAL is the logger CRITICAL level.
	LCRITICAL = unilogger.CRITICAL
	// LUNKNOWN is the unspecified logger level.
	LUNKNOWN = unilogger.UNKNOWN
)

var (
	logger       unilogger.LeveledLogger
	debugLeveled unilogger.DebugLeveledLogger
	currentLevel = LINFO
	lock         sync.RWMutex
)

// Default creates and sets new unilogger.BasicLogger with writer to 'os.Stderr'.
func Default() {
	New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
}

// New creates new unilogger.BasicLogger that writes to provided 'out' io.Writer
// with specific 'prefix' and provided 'flags' and sets it as the default logger.
func New(out io.Writer, prefix string, flags int) {
	basic := unilogger.NewBasicLogger(out, prefix, flags)
	basic.SetOutputDepth(4)
	SetLogger(basic)
}

// Logger returns default logger.
func Logger() unilogger.LeveledLogger {
	lock.RLock()
	defer lock.RUnlock()
	return logger
}

// SetLogger sets the 'l' as the current logger. All registered module loggers
// without their own logger are updated with a sub logger of 'l' if possible.
func SetLogger(l unilogger.LeveledLogger) {
	lock.Lock()
	logger = l
	debugLeveled, _ = l.(unilogger.DebugLeveledLogger)

	if depth, ok := l.(unilogger.OutputDepthGetter); ok {
		if setter, ok := l.(unilogger.OutputDepthSetter); ok {
			setter.SetOutputDepth(depth.GetOutputDepth() + 1)
		}
	}
	if setter, ok := l.(unilogger.LevelSetter); ok {
		setter.SetLevel(currentLevel)
	}
	level := currentLevel
	lock.Unlock()

	modulesLock.Lock()
	defer modulesLock.Unlock()
	sub, isSubLogger := l.(subLogger)
	for _, m := range modules {
		if !m.own && isSubLogger {
			m.setLogger(sub.SubLogger())
		}
		m.SetLevel(level)
	}
}

// Level returns current logger Level.
func Level() unilogger.Level {
	lock.RLock()
	defer lock.RUnlock()
	return currentLevel
}

// ParseLevel parses the level 'name' i.e. 'debug3', 'info', 'warning'.
func ParseLevel(name string) (unilogger.Level, error) {
	level := unilogger.ParseLevel(name)
	if level == LUNKNOWN {
		return level, errors.Newf(class.CommonLoggerUnknownLevel, "unknown logger level: '%s'", name)
	}
	return level, nil
}

// SetLevel sets the level for the default logger and all module loggers.
func SetLevel(level unilogger.Level) error {
	if level == LUNKNOWN {
		return errors.New(class.CommonLoggerUnknownLevel, "can't set unknown logger level. provided level is not valid")
	}

	lock.Lock()
	if level == currentLevel {
		lock.Unlock()
		return nil
	}
	currentLevel = level
	l := logger
	lock.Unlock()

	if l != nil {
		setter, ok := l.(unilogger.LevelSetter)
		if !ok {
			return errors.New(class.CommonLoggerNotImplement, "logger doesn't implement LevelSetter interface")
		}
		setter.SetLevel(level)
	}

	modulesLock.Lock()
	defer modulesLock.Unlock()
	for _, m := range modules {
		m.SetLevel(level)
	}
	return nil
}

// Debug3f writes the formatted LDEBUG3 level log.
func Debug3f(format string, args ...interface{}) {
	l, d := current()
	switch {
	case d != nil:
		d.Debug3f(format, args...)
	case l != nil:
		l.Debugf(format, args...)
	}
}

// Debug2f writes the formatted LDEBUG2 level log.
func Debug2f(format string, args ...interface{}) {
	l, d := current()
	switch {
	case d != nil:
		d.Debug2f(format, args...)
	case l != nil:
		l.Debugf(format, args...)
	}
}

// Debug writes the LDEBUG level log.
func Debug(args ...interface{}) {
	if l, _ := current(); l != nil {
		l.Debug(args...)
	}
}

// Debugf writes the formatted LDEBUG level log.
func Debugf(format string, args ...interface{}) {
	if l, _ := current(); l != nil {
		l.Debugf(format, args...)
	}
}

// Info writes the LINFO level log.
func Info(args ...interface{}) {
	if l, _ := current(); l != nil {
		l.Info(args...)
	}
}

// Infof writes the formatted LINFO level log.
func Infof(format string, args ...interface{}) {
	if l, _ := current(); l != nil {
		l.Infof(format, args...)
	}
}

// Warning writes the warning level log.
func Warning(args ...interface{}) {
	if l, _ := current(); l != nil {
		l.Warning(args...)
	}
}

// Warningf writes the formatted warning level log.
func Warningf(format string, args ...interface{}) {
	if l, _ := current(); l != nil {
		l.Warningf(format, args...)
	}
}

// Error writes the LERROR level log.
func Error(args ...interface{}) {
	if l, _ := current(); l != nil {
		l.Error(args...)
	}
}

// Errorf writes the formatted LERROR level log.
func Errorf(format string, args ...interface{}) {
	if l, _ := current(); l != nil {
		l.Errorf(format, args...)
	}
}

// Fatalf writes the formatted fatal - LCRITICAL level log and exits.
func Fatalf(format string, args ...interface{}) {
	if l, _ := current(); l != nil {
		l.Fatalf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

func current() (unilogger.LeveledLogger, unilogger.DebugLeveledLogger) {
	lock.RLock()
	defer lock.RUnlock()
	return logger, debugLeveled
}
