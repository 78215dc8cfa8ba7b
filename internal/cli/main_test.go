package cli

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// Keep tests off the real terminal.
	isTerminal = func(int) bool { return false }
	goleak.VerifyTestMain(m)
}
