// Package debug provides the engine-wide logging facility shared by every
// core subsystem: BSP traversal, the thinker/mobj playsim, sector specials,
// the renderer, and the WAD loader all log through the same ring buffer.
package debug

import (
	"fmt"
	"time"
)

// LogLevel is the severity of a log entry.
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelNone:
		return "NONE"
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Component identifies which core subsystem produced a log entry.
type Component string

const (
	ComponentWAD      Component = "WAD"
	ComponentPic      Component = "Pic"
	ComponentBSP      Component = "BSP"
	ComponentThinker  Component = "Thinker"
	ComponentMobj     Component = "Mobj"
	ComponentSpecial  Component = "Special"
	ComponentPlayer   Component = "Player"
	ComponentLevel    Component = "Level"
	ComponentRender   Component = "Render"
	ComponentHost     Component = "Host"
	ComponentSystem   Component = "System"
)

// LogEntry is a single recorded log line.
type LogEntry struct {
	Timestamp time.Time
	Component Component
	Level     LogLevel
	Message   string
	Data      map[string]interface{}
}

// Format renders the entry the way a terminal or dumped log file expects.
func (e *LogEntry) Format() string {
	timestamp := e.Timestamp.Format("15:04:05.000")
	return fmt.Sprintf("[%s] [%s] %s: %s", timestamp, e.Component, e.Level, e.Message)
}
