// SPDX-License-Identifier: Apache-2.0

package software

import (
	"os"
	"runtime"
	"testing"
)

func requireLinux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("only runs on Linux")
	}
}

func requireRoot(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("requires root privileges")
	}
}

// swapRunCmd replaces the package level command runner for the duration of a
// test and restores it on cleanup.
func swapRunCmd(t *testing.T, fn func(name string, args ...string) (string, error)) {
	t.Helper()

	orig := runCmd
	runCmd = fn
	t.Cleanup(func() { runCmd = orig })
}
