package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Tag returns the bracketed severity tag printed in front of a message.
func (l Level) Tag() string {
	switch l {
	case LevelDebug:
		return "[DEBUG]"
	case LevelInfo:
		return "[INFO]"
	case LevelWarn:
		return "[WARN]"
	case LevelError:
		return "[ERROR]"
	default:
		return "[?]"
	}
}

// Console writes one tagged line per message to a terminal stream.
// Tags are colored when w is a terminal; lipgloss renders plain text
// otherwise.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	debug  bool
	styles map[Level]lipgloss.Style
}

// NewConsole creates a console logger. Debug lines are dropped unless
// debug is true.
func NewConsole(w io.Writer, debug bool) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:     w,
		debug: debug,
		styles: map[Level]lipgloss.Style{
			LevelDebug: r.NewStyle().Faint(true),
			LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
			LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			LevelError: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		},
	}
}

func (c *Console) Debug(msg string, keysAndValues ...interface{}) {
	if !c.debug {
		return
	}
	c.log(LevelDebug, msg, keysAndValues)
}

func (c *Console) Info(msg string, keysAndValues ...interface{}) {
	c.log(LevelInfo, msg, keysAndValues)
}

func (c *Console) Warn(msg string, keysAndValues ...interface{}) {
	c.log(LevelWarn, msg, keysAndValues)
}

func (c *Console) Error(msg string, keysAndValues ...interface{}) {
	c.log(LevelError, msg, keysAndValues)
}

func (c *Console) log(level Level, msg string, keysAndValues []interface{}) {
	var b strings.Builder
	b.WriteString(c.styles[level].Render(level.Tag()))
	b.WriteByte(' ')
	b.WriteString(msg)
	b.WriteString(formatPairs(keysAndValues))
	b.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.w, b.String())
}

// formatPairs renders key/value pairs as " k=v k2=v2". A trailing key
// without a value is printed with the value MISSING.
func formatPairs(keysAndValues []interface{}) string {
	if len(keysAndValues) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		var value interface{} = "MISSING"
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(value))
	}
	return b.String()
}

func formatValue(v interface{}) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
