// SPDX-License-Identifier: Apache-2.0

package detect

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"howett.net/plist"
)

// SystemVersionPlistPath carries the product name, version and build of the
// running macOS release.
const SystemVersionPlistPath = "/System/Library/CoreServices/SystemVersion.plist"

// systemVersion models the subset of SystemVersion.plist we care about.
type systemVersion struct {
	ProductName         string `plist:"ProductName"`
	ProductVersion      string `plist:"ProductVersion"`
	ProductBuildVersion string `plist:"ProductBuildVersion"`
}

// darwinOSDetector implements OSDetector interface for darwin like OS
type darwinOSDetector struct {
	systemVersionPath string
}

// detectDarwinFlavor converts a product version into a Mac flavor.
func (dd *darwinOSDetector) detectDarwinFlavor(productVersion string) string {
	productVersion = strings.ToLower(productVersion)
	parts := strings.Split(productVersion, ".")

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return OSFlavorUnknown
	}

	if flavor, found := macFlavorMapping[fmt.Sprintf("%d.*", major)]; found {
		return flavor
	}

	return OSFlavorUnknown
}

// ScanOS returns OSInfo with the macOS version, flavor and codeName. It reads
// SystemVersion.plist and falls back to the `sw_vers` program when the plist
// cannot be read.
func (dd *darwinOSDetector) ScanOS() (*OSInfo, error) {
	osInfo := &OSInfo{
		Type:         runtime.GOOS,
		Architecture: runtime.GOARCH,
	}

	sv, err := dd.readSystemVersion()
	if err != nil {
		sv, err = dd.execSWVers()
	}
	if err == nil {
		osInfo.Version = sv.ProductVersion
		osInfo.Flavor = dd.detectDarwinFlavor(sv.ProductVersion)
		osInfo.Description = strings.TrimSpace(fmt.Sprintf("%s %s %s",
			sv.ProductName, sv.ProductVersion, sv.ProductBuildVersion))
	}

	// codename and flavor are same for macOS
	osInfo.CodeName = osInfo.Flavor

	return osInfo, nil
}

func (dd *darwinOSDetector) readSystemVersion() (*systemVersion, error) {
	data, err := os.ReadFile(dd.systemVersionPath)
	if err != nil {
		return nil, err
	}

	sv := &systemVersion{}
	if _, err = plist.Unmarshal(data, sv); err != nil {
		return nil, err
	}

	return sv, nil
}

func (dd *darwinOSDetector) execSWVers() (*systemVersion, error) {
	output, err := exec.Command("sw_vers", "-productVersion").Output()
	if err != nil {
		return nil, err
	}

	return &systemVersion{
		ProductName:    "macOS",
		ProductVersion: strings.Trim(string(output), "\n"),
	}, nil
}

// NewDarwinOSDetector returns an OSDetector for macOS hosts.
func NewDarwinOSDetector() OSDetector {
	return &darwinOSDetector{systemVersionPath: SystemVersionPlistPath}
}

// NewOSDetector returns the detector for the current platform.
func NewOSDetector() OSDetector {
	return NewDarwinOSDetector()
}
