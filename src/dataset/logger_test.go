package dataset

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

// captureLog swaps the base logger for a buffer for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	savedLevel := currentLevel
	baseLogger = log.New(&buf, "", 0)
	t.Cleanup(func() {
		baseLogger = saved
		currentLevel = savedLevel
	})
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := captureLog(t)
	SetLogLevel("info")

	Infof("loaded 29 studios (100.0% of dataset) in 12ms")

	out := buf.String()
	if !strings.Contains(out, "(100.0% of dataset)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!o(MISSING)") || strings.Contains(out, "%!f(MISSING)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestSetLogLevel_GatesLowerSeverities(t *testing.T) {
	buf := captureLog(t)

	SetLogLevel("error")
	Warnf("surface lagging")
	if buf.Len() != 0 {
		t.Fatalf("warn should be dropped at error level: %s", buf.String())
	}
	Errorf("surface gone")
	if !strings.Contains(buf.String(), "[ERROR] surface gone") {
		t.Fatalf("error line missing: %s", buf.String())
	}

	buf.Reset()
	SetLogLevel("bogus") // unknown names leave the level unchanged
	Infof("still quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should stay dropped after a bad level name: %s", buf.String())
	}

	SetLogLevel("debug")
	TimeTrack(time.Now(), "view build")
	if !strings.Contains(buf.String(), "view build took") {
		t.Fatalf("timing line missing at debug level: %s", buf.String())
	}
}
