// Package logging configures the process-wide logrus logger used by the
// examples and by applications embedding the client.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Formatter renders entries as
//
//	[2006-01-02 15:04:05] [INFO ] | request_id | message key=val
//
// The request_id field, when present, gets its own column so related lines
// group visually; remaining fields are appended sorted by key.
type Formatter struct{}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *log.Entry) ([]byte, error) {
	var buf bytes.Buffer

	level := strings.ToUpper(entry.Level.String())
	if level == "WARNING" {
		level = "WARN"
	}
	buf.WriteString(fmt.Sprintf("[%s] [%-5s]", entry.Time.Format("2006-01-02 15:04:05"), level))

	if reqID, ok := entry.Data["request_id"]; ok {
		buf.WriteString(fmt.Sprintf(" | %v |", reqID))
	}

	buf.WriteString(" " + entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == "request_id" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Setup installs the formatter and level on the default logger. When filePath
// is non-empty, output also goes to a size-rotated file.
func Setup(level, filePath string) error {
	log.SetFormatter(&Formatter{})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	log.SetLevel(parsed)

	if filePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	} else {
		log.SetOutput(os.Stdout)
	}
	return nil
}
