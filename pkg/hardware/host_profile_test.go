// SPDX-License-Identifier: Apache-2.0

package hardware

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetHostProfile(t *testing.T) {
	profile := GetHostProfile()
	require.NotNil(t, profile)

	// sysinfo only fills release data on Linux
	if runtime.GOOS == "linux" {
		require.NotEmpty(t, profile.GetKernelRelease())
	}

	// the String rendering must never panic, even with zero values
	require.NotEmpty(t, profile.String())
}
