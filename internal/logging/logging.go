package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, serviceName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", serviceName, sessionStart.Format("20060102_150405")),
	)
}

// ParseZerologLevel converts a string log level to zerolog.Level.
func ParseZerologLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "TRACE":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewZerologLogger builds the zerolog logger used by the storage and influx
// subsystems. Output fans out to the console, an optional log file, and an
// optional Graylog endpoint (GELF over UDP).
func NewZerologLogger(console io.Writer, file io.Writer, level string, graylogAddr string) (zerolog.Logger, error) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.RFC3339,
		},
	}
	if file != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}
	if graylogAddr != "" {
		gw, err := gelf.NewWriter(graylogAddr)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("error connecting to graylog: %v", err)
		}
		writers = append(writers, gw)
	}

	mlw := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(mlw).Level(ParseZerologLevel(level)).With().Timestamp().Logger()
	return logger, nil
}
