// SPDX-License-Identifier: Apache-2.0

package software

import "sync"

// FakePackage is the scripted state of one package inside a FakeManager.
type FakePackage struct {
	Installed  bool
	Version    string
	NewVersion string

	// InstallErr, when set, is returned by Install for this package.
	InstallErr error
}

// FakeManager is an in-memory Manager for tests. Package state is scripted
// up front and mutated by Install the way the real package manager would
// mutate the system. Every call is recorded in order.
type FakeManager struct {
	mu sync.Mutex

	// Packages maps package name to scripted state. Unknown names behave
	// like packages absent from the index.
	Packages map[string]*FakePackage

	// RefreshErr and UpgradeAllErr fail the corresponding operations.
	RefreshErr    error
	UpgradeAllErr error

	// QueryErr fails IsInstalled and HasUpgrade for every package.
	QueryErr error

	calls []string
}

var _ Manager = (*FakeManager)(nil)

// NewFakeManager returns an empty FakeManager ready for scripting.
func NewFakeManager() *FakeManager {
	return &FakeManager{Packages: map[string]*FakePackage{}}
}

func (f *FakeManager) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

// Calls returns the operations performed so far, in order, formatted as
// "operation" or "operation:package".
func (f *FakeManager) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeManager) RefreshIndex() error {
	f.record("refresh-index")
	return f.RefreshErr
}

func (f *FakeManager) UpgradeAll() error {
	f.record("upgrade-all")
	return f.UpgradeAllErr
}

func (f *FakeManager) IsInstalled(name string) (bool, error) {
	f.record("is-installed:" + name)
	if f.QueryErr != nil {
		return false, NewQueryError(f.QueryErr, name)
	}

	pkg, ok := f.Packages[name]
	return ok && pkg.Installed, nil
}

func (f *FakeManager) HasUpgrade(name string) (bool, error) {
	f.record("has-upgrade:" + name)
	if f.QueryErr != nil {
		return false, NewQueryError(f.QueryErr, name)
	}

	pkg, ok := f.Packages[name]
	if !ok || !pkg.Installed {
		return false, nil
	}

	return pkg.NewVersion != "" && pkg.NewVersion != pkg.Version, nil
}

func (f *FakeManager) Install(name string) (*PackageState, error) {
	f.record("install:" + name)

	pkg, ok := f.Packages[name]
	if !ok {
		pkg = &FakePackage{NewVersion: "1.0.0"}
		f.Packages[name] = pkg
	}

	if pkg.InstallErr != nil {
		return nil, NewInstallationError(pkg.InstallErr, name)
	}

	pkg.Installed = true
	if pkg.NewVersion != "" {
		pkg.Version = pkg.NewVersion
		pkg.NewVersion = ""
	}

	return &PackageState{
		Name:      name,
		Version:   pkg.Version,
		Installed: true,
	}, nil
}
