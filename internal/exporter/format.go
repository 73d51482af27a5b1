package exporter

import (
	"fmt"
	"strconv"
	"time"
)

// formatFloat renders a metric value without trailing zeros, so counts like
// 1000 stay "1000" while rates keep their precision.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatFloatPtr renders an optional metric, empty when absent.
func formatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// formatTime renders an optional timestamp in the millisecond ISO form the
// source exports use, empty when absent.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
