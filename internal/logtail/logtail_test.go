package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "cocteler.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf(`{"level":"info","msg":"line %d"}`, i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParseZapLine(t *testing.T) {
	line := `{"level":"warn","ts":"2026-10-19T08:30:00.250Z","logger":"kv","msg":"write failed","key":"@cocktail_app_favorites","attempt":2,"retry":false}`

	e := Parse(line)
	if e.IsRaw() {
		t.Fatalf("Parse() returned raw entry for JSON line")
	}
	if e.Level != "warn" || e.Logger != "kv" || e.Message != "write failed" {
		t.Fatalf("Parse() = %+v", e)
	}
	want := time.Date(2026, 10, 19, 8, 30, 0, 250_000_000, time.UTC)
	if !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if got := e.FieldKeys(); !reflect.DeepEqual(got, []string{"attempt", "key", "retry"}) {
		t.Fatalf("FieldKeys() = %v", got)
	}
	if e.Fields["attempt"] != "2" || e.Fields["retry"] != "false" {
		t.Fatalf("Fields = %v", e.Fields)
	}
}

func TestParseEpochAndOffsetTimes(t *testing.T) {
	e := Parse(`{"level":"info","ts":1700000000.5,"msg":"epoch"}`)
	if got := e.Time.UnixMilli(); got != 1700000000500 {
		t.Fatalf("epoch UnixMilli = %d, want 1700000000500", got)
	}

	e = Parse(`{"level":"info","ts":"2026-10-19T10:30:00.000+0200","msg":"offset"}`)
	want := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	if !e.Time.Equal(want) {
		t.Fatalf("offset Time = %v, want %v", e.Time, want)
	}
}

func TestParseRawLines(t *testing.T) {
	for _, line := range []string{"panic: boom", "{not json", "   "} {
		e := Parse(line)
		if !e.IsRaw() && strings.TrimSpace(line) != "" {
			t.Fatalf("Parse(%q) should be raw", line)
		}
		if e.Message != "" {
			t.Fatalf("Parse(%q).Message = %q, want empty", line, e.Message)
		}
	}
}

func TestReadEntriesAndAtLeast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cocteler.log")
	lines := []string{
		`{"level":"debug","msg":"loaded"}`,
		`{"level":"info","msg":"started"}`,
		"",
		"goroutine dump",
		`{"level":"error","msg":"read failed"}`,
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	entries, err := ReadEntries(path, 0)
	if err != nil {
		t.Fatalf("ReadEntries() error = %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("ReadEntries() returned %d entries, want 4", len(entries))
	}

	filtered := AtLeast(entries, "info")
	var got []string
	for _, e := range filtered {
		if e.IsRaw() {
			got = append(got, e.Raw)
			continue
		}
		got = append(got, e.Message)
	}
	want := []string{"started", "goroutine dump", "read failed"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AtLeast(info) = %v, want %v", got, want)
	}

	if all := AtLeast(entries, ""); len(all) != 4 {
		t.Fatalf("AtLeast(\"\") returned %d entries, want 4", len(all))
	}
}
