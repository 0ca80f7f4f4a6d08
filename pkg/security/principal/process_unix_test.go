// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package principal

import (
	"os"
	"os/user"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestCurrent_MatchesProcessIdentity(t *testing.T) {
	p, err := Current()
	require.NoError(t, err)
	require.Equal(t, os.Geteuid(), p.Uid())
	require.NotEmpty(t, p.Username())
	require.Equal(t, p.Uid() == 0, p.IsSuperuser())
}

func TestCurrent_LookupFailureStillYieldsPrincipal(t *testing.T) {
	orig := currentUser
	currentUser = func() (*user.User, error) {
		return nil, errorx.ExternalError.New("user database unavailable")
	}
	t.Cleanup(func() { currentUser = orig })

	p, err := Current()
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, LookupError))

	// the uid is still valid and decides the privilege question
	require.Equal(t, os.Geteuid(), p.Uid())
	require.Empty(t, p.Username())
}

func TestIsSuperuser(t *testing.T) {
	root := &unixProcess{uid: 0, username: "root"}
	require.True(t, root.IsSuperuser())

	mortal := &unixProcess{uid: 1000, username: "operator"}
	require.False(t, mortal.IsSuperuser())
}
