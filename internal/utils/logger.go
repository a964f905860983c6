package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode      bool
	CurrentLevel   LogLevel = LevelWarn
	ShowRaylibInfo bool
	ShowDebugUI    bool
)

// Output decides how level tags are coloured. Non-terminals get plain text.
var Output = termenv.NewOutput(os.Stderr)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

func (l LogLevel) color() termenv.Color {
	switch l {
	case LevelDebug:
		return termenv.ANSICyan
	case LevelInfo:
		return termenv.ANSIBlue
	case LevelWarn:
		return termenv.ANSIYellow
	case LevelError:
		return termenv.ANSIRed
	}
	return termenv.ANSIWhite
}

// ParseLevel maps a config or flag value to a level.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func logMessage(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}
	tag := Output.String("[" + level.String() + "]").Foreground(level.color())
	log.Printf(tag.String()+" "+format, v...)
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, format, v...) }

// raylib trace levels
const (
	raylibTrace   = 1
	raylibDebug   = 2
	raylibInfo    = 3
	raylibWarning = 4
	raylibError   = 5
	raylibFatal   = 6
)

// RaylibLogCallback routes raylib's trace log through the leveled logger.
func RaylibLogCallback(level int, text string) {
	formattedText := Output.String("[RAYLIB]").Foreground(termenv.ANSIMagenta).String() + " " + text
	switch level {
	case raylibTrace, raylibDebug:
		if CurrentLevel <= LevelDebug {
			Debug("%s", formattedText)
		}
	case raylibInfo:
		if ShowRaylibInfo || CurrentLevel <= LevelInfo {
			Info("%s", formattedText)
		}
	case raylibWarning:
		Warn("%s", formattedText)
	case raylibError, raylibFatal:
		Error("%s", formattedText)
	}
}
