// SPDX-License-Identifier: Apache-2.0

package software

import "github.com/joomcode/errorx"

var (
	ErrorsNamespace = errorx.NewNamespace("software")

	PackageManagerError  = ErrorsNamespace.NewType("package_manager_error")
	InstallationError    = ErrorsNamespace.NewType("installation_error")
	QueryError           = ErrorsNamespace.NewType("query_error")
	ProgramNotFoundError = ErrorsNamespace.NewType("program_not_found")

	packageNameProperty = errorx.RegisterPrintableProperty("package_name")
	programNameProperty = errorx.RegisterPrintableProperty("program_name")
	operationProperty   = errorx.RegisterPrintableProperty("operation")
)

const (
	packageManagerErrorMsg  = "package manager operation '%s' failed"
	installationErrorMsg    = "failed to install package '%s'"
	queryErrorMsg           = "failed to query state of package '%s'"
	programNotFoundErrorMsg = "program '%s' was not found on the search path"
)

// NewPackageManagerError wraps a failed package manager invocation that is
// not tied to a single package, such as an index refresh or a full upgrade.
func NewPackageManagerError(cause error, operation string) *errorx.Error {
	err := PackageManagerError.New(packageManagerErrorMsg, operation).
		WithProperty(operationProperty, operation)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

// NewInstallationError wraps a failed install or upgrade-in-place of a
// single package.
func NewInstallationError(cause error, packageName string) *errorx.Error {
	err := InstallationError.New(installationErrorMsg, packageName).
		WithProperty(packageNameProperty, packageName)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

// NewQueryError wraps a failed installed or upgradable state query.
func NewQueryError(cause error, packageName string) *errorx.Error {
	err := QueryError.New(queryErrorMsg, packageName).
		WithProperty(packageNameProperty, packageName)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

// NewProgramNotFoundError is raised by verification when the executable a
// package was expected to ship cannot be resolved.
func NewProgramNotFoundError(cause error, programName string) *errorx.Error {
	err := ProgramNotFoundError.New(programNotFoundErrorMsg, programName).
		WithProperty(programNameProperty, programName)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

// PackageNameOf returns the package name recorded on an error, if any.
func PackageNameOf(err error) (string, bool) {
	ex := errorx.Cast(err)
	if ex == nil {
		return "", false
	}

	v, ok := ex.Property(packageNameProperty)
	if !ok {
		return "", false
	}

	name, ok := v.(string)
	return name, ok
}
