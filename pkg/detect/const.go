// SPDX-License-Identifier: Apache-2.0

package detect

const (
	RedhatReleaseFileName = "redhat-release"
	LSBReleaseFileName    = "lsb-release"
	OSReleaseFileName     = "os-release"

	EtcRedhatReleasePath = "/etc/redhat-release"
	EtcLSBReleasePath    = "/etc/lsb-release"
	EtcOSReleasePath     = "/etc/os-release"

	// RedhatVersionRegex matches a release version and codename such as "8.7 (Ootpa)"
	RedhatVersionRegex = "([0-9]+)\\.?([0-9]+)*\\.?([0-9]+)*[-_]?([a-zA-Z0-9\\.]+)*\\s?[(]([a-zA-Z0-9\\.]+)*\\s?[)]"

	OSFlavorUnknown  = "unknown"
	OSVersionUnknown = "unknown"

	OSFlavorLinuxRhel   = "rhel"
	OSFlavorLinuxUbuntu = "ubuntu"
	OSFlavorLinuxDebian = "debian"
	OSFlavorLinuxFedora = "fedora"
	OSFlavorLinuxSuse   = "suse"
	OSFlavorLinuxOracle = "oracle"
	OSFlavorLinuxCentos = "centos"

	OSFlavorMacBigSur   = "big-sur"
	OSFlavorMacMonterey = "monterey"
	OSFlavorMacVentura  = "ventura"
	OSFlavorMacSonoma   = "sonoma"
	OSFlavorMacSequoia  = "sequoia"
)

var (
	// release ID to flavor
	linuxFlavorMapping = map[string]string{
		"ubuntu": OSFlavorLinuxUbuntu,
		"fedora": OSFlavorLinuxFedora,
		"debian": OSFlavorLinuxDebian,
		"centos": OSFlavorLinuxCentos,
		"rhel":   OSFlavorLinuxRhel,
		"sles":   OSFlavorLinuxSuse,
		"ol":     OSFlavorLinuxOracle,
	}

	// major product version to flavor
	macFlavorMapping = map[string]string{
		"11.*": OSFlavorMacBigSur,
		"12.*": OSFlavorMacMonterey,
		"13.*": OSFlavorMacVentura,
		"14.*": OSFlavorMacSonoma,
		"15.*": OSFlavorMacSequoia,
	}

	// flavors whose hosts install software through apt
	aptBasedFlavors = map[string]struct{}{
		OSFlavorLinuxDebian: {},
		OSFlavorLinuxUbuntu: {},
	}
)
