package output

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestCompletionLine(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 3, 123456000, time.Local)
	want := "-- | 2024-03-09 07:05:03.123456 | --"
	if got := CompletionLine(ts); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	whole := time.Date(2024, 3, 9, 7, 5, 3, 0, time.Local)
	if got := CompletionLine(whole); got != "-- | 2024-03-09 07:05:03 | --" {
		t.Errorf("expected microseconds to be dropped, got %q", got)
	}
	pattern := regexp.MustCompile(`^-- \| \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d{6})? \| --$`)
	if !pattern.MatchString(CompletionLine(time.Now())) {
		t.Errorf("completion line does not match %s", pattern)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintHelpersWriteToOut(t *testing.T) {
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	defer func() { Out = prev }()

	PrintSuccess("saved")
	PrintError("broken")
	out := buf.String()
	if !strings.Contains(out, "saved") || !strings.Contains(out, "broken") {
		t.Errorf("expected both messages in output, got %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected two lines, got %q", out)
	}
}
