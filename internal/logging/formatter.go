package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// ColoredFormatter renders entries as "time LEVEL msg key=value ..." lines
type ColoredFormatter struct {
	TimestampFormat string
	// SortingFunc orders field keys, nil sorts alphabetically
	SortingFunc   func([]string) []string
	DisableColors bool
}

// NewColoredFormatter returns a formatter with tweetlate's field priorities
func NewColoredFormatter() *ColoredFormatter {
	return &ColoredFormatter{
		TimestampFormat: time.RFC3339,
		SortingFunc:     defaultFieldSorting,
	}
}

// Format implements logrus.Formatter
func (f *ColoredFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	if f.SortingFunc != nil {
		keys = f.SortingFunc(keys)
	} else {
		sort.Strings(keys)
	}

	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	levelColor := getLevelColor(entry.Level)
	timeColor := color.New(color.FgYellow)
	valueColor := color.New(color.FgWhite)
	if f.DisableColors {
		levelColor.DisableColor()
		timeColor.DisableColor()
		valueColor.DisableColor()
	}

	b.WriteString(timeColor.Sprint(entry.Time.Format(f.TimestampFormat)))
	b.WriteByte(' ')
	b.WriteString(levelColor.Sprintf("%-7s", strings.ToUpper(entry.Level.String())))
	b.WriteByte(' ')
	b.WriteString(levelColor.Sprint(entry.Message))

	for _, k := range keys {
		fieldColor := color.New(color.FgCyan)
		if isImportantField(k) {
			fieldColor = color.New(color.FgGreen)
		}
		if f.DisableColors {
			fieldColor.DisableColor()
		}

		b.WriteByte(' ')
		b.WriteString(fieldColor.Sprintf("%s=", k))
		b.WriteString(valueColor.Sprint(formatValue(entry.Data[k])))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case error:
		return fmt.Sprintf("%q", v.Error())
	case float64:
		return fmt.Sprintf("%.3f", v)
	default:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(jsonBytes)
	}
}

func getLevelColor(level logrus.Level) *color.Color {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return color.New(color.FgBlue)
	case logrus.InfoLevel:
		return color.New(color.FgGreen)
	case logrus.WarnLevel:
		return color.New(color.FgYellow)
	case logrus.ErrorLevel:
		return color.New(color.FgRed)
	case logrus.FatalLevel, logrus.PanicLevel:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

var priorityFields = map[string]int{
	"run_id":     1,
	"part":       2,
	"tweet_id":   3,
	"lang":       4,
	"confidence": 5,
	"outcome":    6,
	"error":      7,
}

func isImportantField(field string) bool {
	switch field {
	case "tweet_id", "part", "error":
		return true
	}
	return false
}

func defaultFieldSorting(keys []string) []string {
	sort.Slice(keys, func(i, j int) bool {
		iPriority := priorityFields[keys[i]]
		jPriority := priorityFields[keys[j]]
		if iPriority != 0 && jPriority != 0 {
			return iPriority < jPriority
		}
		if iPriority != 0 {
			return true
		}
		if jPriority != 0 {
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}
