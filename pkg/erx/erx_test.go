// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/probelab/scanprep/pkg/exit"
)

func TestNewCommandError(t *testing.T) {
	req := require.New(t)

	err := NewCommandError(nil, "apt-get update", exit.GeneralError)
	req.Error(err)
	req.Contains(err.Error(), "apt-get update")
	req.Contains(err.Error(), "exit code 1")
	req.True(errorx.IsOfType(err, CommandError))

	cmd, ok := CommandOf(err)
	req.True(ok)
	req.Equal("apt-get update", cmd)

	req.Equal(exit.GeneralError, ExitCode(err))
}

func TestNewCommandError_InvalidCodeCollapses(t *testing.T) {
	req := require.New(t)

	err := NewCommandError(nil, "apt-get upgrade", exit.Code(512))
	req.Equal(exit.GeneralError, ExitCode(err))
}

func TestNewUnsupportedOSError(t *testing.T) {
	req := require.New(t)

	err := NewUnsupportedOSError("darwin")
	req.Error(err)
	req.Contains(err.Error(), "darwin")
	req.True(errorx.IsOfType(err, UnsupportedOSError))
	req.True(IsPrecondition(err))
	req.False(IsInterrupted(err))

	name, ok := OSNameOf(err)
	req.True(ok)
	req.Equal("darwin", name)
}

func TestNewInterruptedError(t *testing.T) {
	req := require.New(t)

	err := NewInterruptedError(nil)
	req.True(IsInterrupted(err))
	req.Equal(exit.Interrupted, ExitCode(err))
}

func TestIsInterrupted_SurvivesWrapping(t *testing.T) {
	req := require.New(t)

	err := errorx.Decorate(NewInterruptedError(nil), "workflow aborted")
	req.True(IsInterrupted(err))
	req.Equal(exit.Interrupted, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	req := require.New(t)

	req.Equal(exit.NormalTermination, ExitCode(nil))
	req.Equal(exit.GeneralError, ExitCode(errorx.IllegalState.New("boom")))
	req.Equal(exit.Interrupted, ExitCode(NewInterruptedError(nil)))
	req.Equal(exit.PermissionDenied, ExitCode(NewCommandError(nil, "dpkg-query", exit.PermissionDenied)))
}
