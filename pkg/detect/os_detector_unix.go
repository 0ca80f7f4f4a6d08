// SPDX-License-Identifier: Apache-2.0

package detect

import (
	"bufio"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

// unixOSDetector implements OSDetector interface for unix like OS
type unixOSDetector struct {
	// list of files to check in order
	// files are mapped in osReleaseFilePaths
	fileCheckSequence []string

	// mapping of release file name to path
	osReleaseFilePaths map[string]string

	logger zerolog.Logger
}

// extractVal extracts the value part from the line.
// It assumes the value is separated by '=' and returns the second part after trimming spaces
func (ud *unixOSDetector) extractVal(line string) string {
	parts := strings.SplitN(line, "=", 2)
	if len(parts) == 2 {
		return strings.Trim(strings.TrimSpace(parts[1]), "\"")
	}

	return ""
}

// detectLinuxFlavor converts release ID into a Linux OS flavor.
// release ID should be extracted from /etc/lsb-release or /etc/os-release file.
func (ud *unixOSDetector) detectLinuxFlavor(releaseID string) string {
	releaseID = strings.ToLower(releaseID)
	if flavor, found := linuxFlavorMapping[releaseID]; found {
		return flavor
	}

	return OSFlavorUnknown
}

// extractOSInfo is a helper method to extract version, flavor, codeName and description from a
// release file.
//
// It assumes the path points to a /etc/lsb-release or /etc/os-release style file and performs
// basic prefix matching to determine which line carries each value.
//
// If no values are found, it returns an OSInfo instance with OS Type and OS Architecture info
// only as reported by the Go runtime.
func (ud *unixOSDetector) extractOSInfo(path string, idPrefix string, releasePrefix string,
	codeNamePrefix string, descriptionPrefix string) (*OSInfo, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, errorx.DataUnavailable.Wrap(err, "invalid OS release file %q", path)
	}
	defer f.Close()

	osInfo := &OSInfo{
		Type:         runtime.GOOS,
		Architecture: runtime.GOARCH,
	}

	// detect version, flavor, codename and description
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, releasePrefix):
			osInfo.Version = ud.extractVal(line)
		case strings.HasPrefix(line, idPrefix):
			osInfo.Flavor = ud.detectLinuxFlavor(ud.extractVal(line))
		case strings.HasPrefix(line, codeNamePrefix):
			osInfo.CodeName = ud.extractVal(line)
		case strings.HasPrefix(line, descriptionPrefix):
			osInfo.Description = ud.extractVal(line)
		}

		if osInfo.Version != "" && osInfo.Flavor != "" && osInfo.CodeName != "" && osInfo.Description != "" {
			break
		}
	}

	return osInfo, nil
}

func (ud *unixOSDetector) scanRedhatReleaseFile(path string, versionRegex string) (*OSInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorx.DataUnavailable.Wrap(err, "invalid OS release file %q", path)
	}
	defer f.Close()

	matcher, err := regexp.Compile(versionRegex)
	if err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "failed to parse release version regex %q", versionRegex)
	}

	osInfo := &OSInfo{
		Type:         runtime.GOOS,
		Flavor:       OSFlavorLinuxRhel,
		Architecture: runtime.GOARCH,
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Red Hat Enterprise Linux release") {
			osInfo.Description = strings.TrimSpace(line)
			matches := matcher.FindStringSubmatch(line)

			if len(matches) == 6 { // 6 for both version and codename
				var versionParts []string
				for _, part := range matches[1 : len(matches)-1] {
					if part != "" {
						versionParts = append(versionParts, part)
					}
				}
				osInfo.Version = strings.Join(versionParts, ".")
				osInfo.CodeName = matches[len(matches)-1]
			}

			break
		}
	}

	return osInfo, nil
}

func (ud *unixOSDetector) scanLSBReleaseFile(path string) (*OSInfo, error) {
	return ud.extractOSInfo(path,
		"DISTRIB_ID=", "DISTRIB_RELEASE=", "DISTRIB_CODENAME=", "DISTRIB_DESCRIPTION=")
}

func (ud *unixOSDetector) scanOSReleaseFile(path string) (*OSInfo, error) {
	return ud.extractOSInfo(path,
		"ID=", "VERSION_ID=", "VERSION_CODENAME=", "PRETTY_NAME=")
}

func (ud *unixOSDetector) scanReleaseFile(releaseFileName string, path string) (*OSInfo, error) {
	switch releaseFileName {
	case RedhatReleaseFileName:
		return ud.scanRedhatReleaseFile(path, RedhatVersionRegex)
	case LSBReleaseFileName:
		return ud.scanLSBReleaseFile(path)
	case OSReleaseFileName:
		return ud.scanOSReleaseFile(path)
	}

	return nil, errorx.IllegalArgument.New("unsupported OS release file %q", path)
}

func (ud *unixOSDetector) ScanOS() (*OSInfo, error) {
	var paths []string

	for _, releaseFileName := range ud.fileCheckSequence {
		if path, found := ud.osReleaseFilePaths[releaseFileName]; found {
			paths = append(paths, path)
			ud.logger.Debug().Msgf("Processing %q at %q", releaseFileName, path)
			osInfo, err := ud.scanReleaseFile(releaseFileName, path)
			if err == nil {
				return osInfo, nil
			}
			ud.logger.Debug().Msgf("Processing %q failed: %s", path, err.Error())
		}
	}

	return nil, errorx.DataUnavailable.New("failed to detect OS version, type and codeName from release files: %s", paths)
}

type UnixOSDetectorOption = func(ud *unixOSDetector)

// WithUnixOSReleasePaths allows injecting custom release file path locations for Unix OSDetector.
func WithUnixOSReleasePaths(paths map[string]string) UnixOSDetectorOption {
	return func(ud *unixOSDetector) {
		if paths != nil {
			ud.osReleaseFilePaths = paths
		}
	}
}

// WithUnixCheckSequence allows injecting the sequence for release path checks
func WithUnixCheckSequence(seq []string) UnixOSDetectorOption {
	return func(ud *unixOSDetector) {
		ud.fileCheckSequence = seq
	}
}

// WithUnixOSDetectorLogger allows injecting logger for the OSDetector
func WithUnixOSDetectorLogger(logger zerolog.Logger) UnixOSDetectorOption {
	return func(ud *unixOSDetector) {
		ud.logger = logger
	}
}

func NewUnixOSDetector(opts ...UnixOSDetectorOption) OSDetector {
	ud := &unixOSDetector{
		fileCheckSequence: []string{
			LSBReleaseFileName,
			OSReleaseFileName,
			RedhatReleaseFileName,
		},
		osReleaseFilePaths: map[string]string{
			LSBReleaseFileName:    EtcLSBReleasePath,
			OSReleaseFileName:     EtcOSReleasePath,
			RedhatReleaseFileName: EtcRedhatReleasePath,
		},
		logger: nolog,
	}

	for _, opt := range opts {
		opt(ud)
	}

	return ud
}
