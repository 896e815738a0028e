// Package testutil provides testing utilities for stockpile
package testutil

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestLogger creates a test logger that writes to the test output.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// Widget is a trivial pooled value. Serial is assigned by the factory that
// made it, starting at 1.
type Widget struct {
	Serial int
	Dirty  bool
}

// WidgetFactory counts how many widgets it has produced.
type WidgetFactory struct {
	Calls int
}

// New produces the next widget. Pass f.New as a pool factory.
func (f *WidgetFactory) New() *Widget {
	f.Calls++
	return &Widget{Serial: f.Calls}
}
