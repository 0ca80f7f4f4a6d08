// SPDX-License-Identifier: Apache-2.0

package software

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

// writeScript drops an executable shell script into dir and returns its path.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755)
	require.NoError(t, err)
	return path
}

func TestDetectExecutablePath_KnownProgram(t *testing.T) {
	ud := NewProgramDetector(nil)

	path, err := ud.DetectExecutablePath("sh")
	require.NoError(t, err)
	require.NotEmpty(t, path)
	require.FileExists(t, path)
}

func TestDetectExecutablePath_MissingProgram(t *testing.T) {
	ud := NewProgramDetector(nil)

	_, err := ud.DetectExecutablePath("definitely-not-a-real-program-42")
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, ProgramNotFoundError))
}

func TestGetProgramInfo_CapturesFirstVersionLine(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "fakescan", `echo "fakescan version 9.99"; echo "usage: fakescan [target]"`)
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	ud := NewProgramDetector(nil)
	info, err := ud.GetProgramInfo("fakescan")
	require.NoError(t, err)
	require.Equal(t, "fakescan version 9.99", info.Version)
	require.Equal(t, filepath.Join(dir, "fakescan"), info.Path)
	require.Len(t, info.SHA256, 64)
	require.True(t, info.IsExecOwner())
}

func TestGetProgramInfo_VersionUnknownFallback(t *testing.T) {
	dir := t.TempDir()

	// produces no output at all
	writeScript(t, dir, "silenttool", "exit 0")
	// fails when asked for its version
	writeScript(t, dir, "grumpytool", "exit 3")

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	ud := NewProgramDetector(nil)

	info, err := ud.GetProgramInfo("silenttool")
	require.NoError(t, err)
	require.Equal(t, VersionUnknown, info.Version)

	info, err = ud.GetProgramInfo("grumpytool")
	require.NoError(t, err)
	require.Equal(t, VersionUnknown, info.Version)
}

func TestGetProgramInfo_CustomVersionArguments(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "argecho", `[ "$1" = "-V" ] && echo "argecho 1.2.3" || exit 1`)
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	ud := NewProgramDetector(nil)

	info, err := ud.GetProgramInfo("argecho", "-V")
	require.NoError(t, err)
	require.Equal(t, "argecho 1.2.3", info.Version)
}
