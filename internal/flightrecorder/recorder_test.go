package flightrecorder

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sdeery14/fitness-app-sub000/internal/testhelpers"
)

func newRecorder(t *testing.T) *Recorder {
	t.Helper()
	r, err := New(testhelpers.NewTestLogger(t), Config{Dir: t.TempDir(), MinAge: 0, MaxBytes: 0, Cooldown: time.Minute})
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}
	if err = r.Start(t.Context()); err != nil {
		t.Fatalf("Failed to start recorder: %v", err)
	}
	t.Cleanup(func() { r.Stop(t.Context()) })
	return r
}

func TestRecorder_Capture(t *testing.T) {
	r := newRecorder(t)
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	path := r.Capture(t.Context(), "timeout")
	if !strings.HasSuffix(path, "timeout-20240101-120000.trace") {
		t.Fatalf("unexpected trace path %q", path)
	}
	stat, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat trace: %v", err)
	}
	if stat.Size() == 0 {
		t.Error("trace file is empty")
	}

	now = now.Add(30 * time.Second)
	if path = r.Capture(t.Context(), "timeout"); path != "" {
		t.Errorf("expected the cooldown to skip the capture, got %s", path)
	}

	now = now.Add(time.Minute)
	if path = r.Capture(t.Context(), "timeout"); path == "" {
		t.Error("expected a capture after the cooldown")
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		t.Fatalf("Failed to read trace dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 trace files, got %d", len(entries))
	}
}

func TestNew_requiresDir(t *testing.T) {
	if _, err := New(testhelpers.NewTestLogger(t), Config{}); err == nil {
		t.Error("expected an error without a trace directory")
	}
}
