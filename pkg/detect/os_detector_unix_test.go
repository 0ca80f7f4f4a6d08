// SPDX-License-Identifier: Apache-2.0

package detect

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

const lsbReleaseFixture = `DISTRIB_ID=Ubuntu
DISTRIB_RELEASE=20.04
DISTRIB_CODENAME=focal
DISTRIB_DESCRIPTION="Ubuntu 20.04.6 LTS"
`

const osReleaseFixture = `PRETTY_NAME="Debian GNU/Linux 12 (bookworm)"
NAME="Debian GNU/Linux"
VERSION_ID="12"
VERSION="12 (bookworm)"
VERSION_CODENAME=bookworm
ID=debian
ID_LIKE=debian
HOME_URL="https://www.debian.org/"
`

const redhatReleaseFixture = "Red Hat Enterprise Linux release 8.7 (Ootpa)\n"

func writeFixture(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestUnixOSDetector_Scan_LSB_Release(t *testing.T) {
	req := require.New(t)
	ud := &unixOSDetector{}

	path := writeFixture(t, LSBReleaseFileName, lsbReleaseFixture)
	osInfo, err := ud.scanLSBReleaseFile(path)
	req.NoError(err)
	req.Equal(runtime.GOOS, osInfo.Type)
	req.Equal(runtime.GOARCH, osInfo.Architecture)
	req.Equal(OSFlavorLinuxUbuntu, osInfo.Flavor)
	req.Equal("20.04", osInfo.Version)
	req.Equal("focal", osInfo.CodeName)
	req.Equal("Ubuntu 20.04.6 LTS", osInfo.Description)
	req.True(osInfo.IsAptBased())

	// incorrect file
	path = writeFixture(t, RedhatReleaseFileName, redhatReleaseFixture)
	osInfo, err = ud.scanLSBReleaseFile(path)
	req.NoError(err)
	req.Equal(runtime.GOOS, osInfo.Type)
	req.Empty(osInfo.Flavor)
	req.Empty(osInfo.Version)
	req.Empty(osInfo.CodeName)
	req.Empty(osInfo.Description)
}

func TestUnixOSDetector_Scan_OS_Release(t *testing.T) {
	req := require.New(t)
	ud := &unixOSDetector{}

	path := writeFixture(t, OSReleaseFileName, osReleaseFixture)
	osInfo, err := ud.scanOSReleaseFile(path)
	req.NoError(err)
	req.Equal(runtime.GOOS, osInfo.Type)
	req.Equal(runtime.GOARCH, osInfo.Architecture)
	req.Equal(OSFlavorLinuxDebian, osInfo.Flavor)
	req.Equal("12", osInfo.Version)
	req.Equal("bookworm", osInfo.CodeName)
	req.Equal("Debian GNU/Linux 12 (bookworm)", osInfo.Description)
	req.True(osInfo.IsAptBased())
}

func TestUnixOSDetector_Scan_Redhat_Release(t *testing.T) {
	req := require.New(t)
	ud := &unixOSDetector{}

	path := writeFixture(t, RedhatReleaseFileName, redhatReleaseFixture)
	osInfo, err := ud.scanRedhatReleaseFile(path, RedhatVersionRegex)
	req.NoError(err)
	req.Equal(runtime.GOOS, osInfo.Type)
	req.Equal(runtime.GOARCH, osInfo.Architecture)
	req.Equal(OSFlavorLinuxRhel, osInfo.Flavor)
	req.Equal("8.7", osInfo.Version)
	req.Equal("Ootpa", osInfo.CodeName)
	req.Equal("Red Hat Enterprise Linux release 8.7 (Ootpa)", osInfo.Description)
	req.False(osInfo.IsAptBased())

	osInfo, err = ud.scanRedhatReleaseFile(path, "INVALID_REGEX[")
	req.Error(err)
	req.Contains(err.Error(), "failed to parse release version regex")
	req.Nil(osInfo)

	osInfo, err = ud.scanRedhatReleaseFile(path+"invalid", RedhatVersionRegex)
	req.Error(err)
	req.Nil(osInfo)
}

func TestUnixOSDetector_ScanOS(t *testing.T) {
	req := require.New(t)

	lsbPath := writeFixture(t, LSBReleaseFileName, lsbReleaseFixture)
	osReleasePath := writeFixture(t, OSReleaseFileName, osReleaseFixture)

	// the first readable file in the sequence wins
	ud := NewUnixOSDetector(
		WithUnixOSReleasePaths(map[string]string{
			LSBReleaseFileName:    lsbPath,
			OSReleaseFileName:     osReleasePath,
			RedhatReleaseFileName: "/nonexistent/redhat-release",
		}),
		WithUnixCheckSequence([]string{
			LSBReleaseFileName,
			OSReleaseFileName,
			RedhatReleaseFileName,
		}),
		WithUnixOSDetectorLogger(nolog),
	)
	osInfo, err := ud.ScanOS()
	req.NoError(err)
	req.Equal(OSFlavorLinuxUbuntu, osInfo.Flavor)
	req.Equal("20.04", osInfo.Version)

	// unreadable entries are skipped
	ud = NewUnixOSDetector(
		WithUnixOSReleasePaths(map[string]string{
			LSBReleaseFileName:    lsbPath + "invalid",
			OSReleaseFileName:     osReleasePath,
			RedhatReleaseFileName: "/nonexistent/redhat-release",
		}),
		WithUnixCheckSequence([]string{
			LSBReleaseFileName,
			OSReleaseFileName,
			RedhatReleaseFileName,
		}),
		WithUnixOSDetectorLogger(nolog),
	)
	osInfo, err = ud.ScanOS()
	req.NoError(err)
	req.Equal(OSFlavorLinuxDebian, osInfo.Flavor)
	req.Equal("12", osInfo.Version)

	// nothing readable at all
	ud = NewUnixOSDetector(
		WithUnixOSReleasePaths(map[string]string{
			LSBReleaseFileName: "/nonexistent/lsb-release",
		}),
		WithUnixCheckSequence([]string{LSBReleaseFileName}),
		WithUnixOSDetectorLogger(nolog),
	)
	osInfo, err = ud.ScanOS()
	req.Error(err)
	req.Nil(osInfo)
	req.Contains(err.Error(), "failed to detect OS")
}
