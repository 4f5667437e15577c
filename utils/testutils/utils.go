package testutils

import (
	"math"
	"reflect"
	"testing"

	"github.com/benoitkugler/gridlayout/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// AssertNear checks that got and exp differ by less than 1e-6.
func AssertNear(t *testing.T, got, exp float64) {
	t.Helper()
	if math.Abs(got-exp) > 1e-6 {
		t.Fatalf("expected %v, got %v", exp, got)
	}
}

// CapturedLogs stores the entries emitted by the package loggers
// since CaptureLogs was called.
type CapturedLogs struct {
	logs *observer.ObservedLogs
}

// CaptureLogs routes the package loggers to an in-memory sink.
// Use it as
//
//	defer tu.CaptureLogs().AssertNoLogs(t)
func CaptureLogs() *CapturedLogs {
	core, logs := observer.New(zap.DebugLevel)
	logger.SetCore(core)
	return &CapturedLogs{logs: logs}
}

// Logs returns the warning messages captured so far.
func (c *CapturedLogs) Logs() []string {
	var out []string
	for _, entry := range c.logs.FilterLevelExact(zap.WarnLevel).All() {
		out = append(out, entry.Message)
	}
	return out
}

// AssertNoLogs fails if any warning has been emitted.
func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	if l := c.Logs(); len(l) != 0 {
		t.Fatalf("unexpected warnings: %v", l)
	}
}

// CheckEqual fails if the captured warnings do not match exp.
func (c *CapturedLogs) CheckEqual(exp []string, t *testing.T) {
	t.Helper()
	AssertEqual(t, c.Logs(), exp)
}
