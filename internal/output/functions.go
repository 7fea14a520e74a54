package output

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Styled messages go to stderr so stdout carries only the completion line.
var Out io.Writer = os.Stderr

func PrintSuccess(text string) {
	fmt.Fprintln(Out, successStyle.Render(StyleSymbols["pass"]+" "+text))
}
func PrintError(text string) {
	fmt.Fprintln(Out, errorStyle.Render(StyleSymbols["fail"]+" "+text))
}
func PrintInfo(text string) {
	fmt.Fprintln(Out, infoStyle.Render(StyleSymbols["info"]+" "+text))
}
func PrintDetail(text string) {
	fmt.Fprintln(Out, detailStyle.Render(StyleSymbols["arrow"]+" "+text))
}

// FormatBytes converts bytes to human-readable format
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// CompletionLine renders the end-of-run marker printed on stdout. Microseconds
// are left out when they are zero.
func CompletionLine(t time.Time) string {
	layout := "2006-01-02 15:04:05.000000"
	if t.Nanosecond()/1000 == 0 {
		layout = "2006-01-02 15:04:05"
	}
	return fmt.Sprintf("-- | %s | --", t.Format(layout))
}
