// SPDX-License-Identifier: Apache-2.0

// Package hardware gathers a diagnostic profile of the host. Provisioning
// logs the profile at debug level during the environment check; no decision
// depends on it.
package hardware

import (
	"fmt"
	"os"
	"sync"

	"github.com/jaypipes/ghw"
	"github.com/zcalusic/sysinfo"
)

var once sync.Once

func suppressGHWWarnings() {
	once.Do(func() {
		os.Setenv("GHW_DISABLE_WARNINGS", "1")
	})
}

// HostProfile describes the host a provisioning run operates on.
type HostProfile interface {
	// GetOSVendor returns the OS vendor or distribution name.
	GetOSVendor() string
	// GetOSVersion returns the OS release version.
	GetOSVersion() string
	// GetKernelRelease returns the running kernel release string.
	GetKernelRelease() string
	// GetCPUCores returns the number of physical CPU cores, 0 when unknown.
	GetCPUCores() uint
	// GetTotalMemoryGB returns total physical memory in GB, 0 when unknown.
	GetTotalMemoryGB() uint64

	String() string
}

// defaultHostProfile implements HostProfile using sysinfo for release data
// and ghw for hardware inventory. Hardware probes can fail inside
// containers; failures degrade to zero values instead of erroring because
// the profile is diagnostic only.
type defaultHostProfile struct {
	sysInfo sysinfo.SysInfo
}

// GetHostProfile gathers and returns the profile of the current host.
func GetHostProfile() HostProfile {
	suppressGHWWarnings()

	var si sysinfo.SysInfo
	si.GetSysInfo()

	return &defaultHostProfile{sysInfo: si}
}

func (d *defaultHostProfile) GetOSVendor() string {
	return d.sysInfo.OS.Vendor
}

func (d *defaultHostProfile) GetOSVersion() string {
	return d.sysInfo.OS.Version
}

func (d *defaultHostProfile) GetKernelRelease() string {
	return d.sysInfo.Kernel.Release
}

func (d *defaultHostProfile) GetCPUCores() uint {
	cpu, err := ghw.CPU()
	if err != nil {
		return 0
	}

	return uint(cpu.TotalCores)
}

func (d *defaultHostProfile) GetTotalMemoryGB() uint64 {
	memory, err := ghw.Memory()
	if err != nil {
		return 0
	}

	return uint64(memory.TotalPhysicalBytes) / (1024 * 1024 * 1024)
}

func (d *defaultHostProfile) String() string {
	return fmt.Sprintf("%s %s (kernel %s, %d cores, %d GB memory)",
		d.GetOSVendor(), d.GetOSVersion(), d.GetKernelRelease(),
		d.GetCPUCores(), d.GetTotalMemoryGB())
}
