package format

import (
	"strconv"
	"time"
)

// FormatExecutionDuration renders d with a unit suited to its magnitude:
// whole nanoseconds, microseconds or milliseconds below one second, and
// time.Duration notation rounded to the millisecond above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return strconv.FormatInt(d.Nanoseconds(), 10) + "ns"
	case d < time.Millisecond:
		return strconv.FormatInt(d.Microseconds(), 10) + "µs"
	case d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	}
	return d.Round(time.Millisecond).String()
}
