package observability

import (
	"fmt"
	"net/http"
	"time"
)

// AppendServerTiming adds a Server-Timing entry. Non-positive durations are
// omitted; an entry with neither duration nor description is skipped.
func AppendServerTiming(w http.ResponseWriter, name string, durMs float64, desc string) {
	entry := name
	if durMs > 0 {
		entry += fmt.Sprintf(";dur=%.2f", durMs)
	}
	if desc != "" {
		entry += fmt.Sprintf(";desc=%q", desc)
	}
	if entry == name {
		return
	}
	w.Header().Add("Server-Timing", entry)
}

// SinceMs is the elapsed time since t in fractional milliseconds.
func SinceMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
