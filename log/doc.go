// Package log contains the viewimport logger used by all packages.
//
// The package level functions write to the default logger, which is any
// uni-logger 'LeveledLogger'. If the logger implements 'DebugLeveledLogger'
// the Debug2 and Debug3 levels are written with their own level, otherwise
// they fall back to Debug.
//
// Packages that want their own prefix and level create a ModuleLogger i.e.
// the view parser traces every context push and pop with its 'view' module
// logger on the DEBUG3 level.
package log
