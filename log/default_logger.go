package log

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/heroku/color"
	"github.com/pkg/errors"
)

var _ LoggerHandlerWithLevel = &DefaultLogger{}

var (
	warnStyle  = color.New(color.FgYellow, color.Bold)
	errorStyle = color.New(color.FgRed, color.Bold)
)

// DefaultLogger is an apex logger writing plain messages, with colored
// prefixes on warnings and errors.
type DefaultLogger struct {
	*log.Logger
}

func NewDefaultLogger(writer io.Writer) *DefaultLogger {
	return &DefaultLogger{
		Logger: &log.Logger{
			Level:   log.InfoLevel,
			Handler: &handler{writer: writer},
		},
	}
}

func (l *DefaultLogger) HandleLog(entry *log.Entry) error {
	return l.Logger.Handler.HandleLog(entry)
}

func (l *DefaultLogger) LogLevel() log.Level {
	return l.Logger.Level
}

func (l *DefaultLogger) SetLevel(requested string) error {
	level, err := log.ParseLevel(requested)
	if err != nil {
		return errors.Wrapf(err, "parse log level '%s'", requested)
	}
	l.Logger.Level = level
	return nil
}

type handler struct {
	mu     sync.Mutex
	writer io.Writer
}

func (h *handler) HandleLog(entry *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := fmt.Fprint(h.writer, formatLevel(entry.Level)+appendMissingLineFeed(entry.Message))
	return err
}

func formatLevel(ll log.Level) string {
	switch ll {
	case log.ErrorLevel:
		return errorStyle.Sprint("ERROR: ")
	case log.WarnLevel:
		return warnStyle.Sprint("Warning: ")
	default:
		return ""
	}
}

func appendMissingLineFeed(msg string) string {
	if strings.HasSuffix(msg, "\n") {
		return msg
	}
	return msg + "\n"
}
