// SPDX-License-Identifier: Apache-2.0

package software

import (
	"crypto/sha256"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// ProgramDetector locates an installed program and captures its identity.
type ProgramDetector interface {
	// DetectExecutablePath resolves the named executable on the search path.
	DetectExecutablePath(name string) (string, error)
	// GetProgramInfo resolves the named executable and captures its path,
	// file mode, content hash and self-reported version.
	GetProgramInfo(name string, versionArgs ...string) (*ProgramInfo, error)
}

// unixProgramDetector implements ProgramDetector for unix, darwin included.
type unixProgramDetector struct {
	logger *zerolog.Logger
}

// NewProgramDetector returns the ProgramDetector for the current platform.
func NewProgramDetector(logger *zerolog.Logger) ProgramDetector {
	if logger == nil {
		logger = &nolog
	}

	return &unixProgramDetector{logger: logger}
}

// DetectExecutablePath resolves name through the user's shell so that the
// same search path applies as in an interactive session.
func (ud *unixProgramDetector) DetectExecutablePath(name string) (string, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	out, err := exec.Command(shell, "-c", fmt.Sprintf("command -v %s", name)).Output()
	if err != nil {
		return "", NewProgramNotFoundError(err, name)
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", NewProgramNotFoundError(nil, name)
	}

	return path, nil
}

// detectProgramVersion runs the program with its version arguments and
// returns the first non-empty line of output. Programs that print nothing
// usable yield VersionUnknown rather than an error: a missing version line
// does not fail verification, a missing executable does.
func (ud *unixProgramDetector) detectProgramVersion(path string, versionArgs []string) string {
	if len(versionArgs) == 0 {
		versionArgs = []string{"--version"}
	}

	out, err := exec.Command(path, versionArgs...).Output()
	if err != nil {
		ud.logger.Debug().
			Str(logFields.path, path).
			Err(err).
			Msg("version query failed")
		return VersionUnknown
	}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}

	return VersionUnknown
}

func (ud *unixProgramDetector) computeProgramHash(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", NewQueryError(err, path)
	}

	return fmt.Sprintf("%x", sha256.Sum256(b)), nil
}

func (ud *unixProgramDetector) GetProgramInfo(name string, versionArgs ...string) (*ProgramInfo, error) {
	path, err := ud.DetectExecutablePath(name)
	if err != nil {
		return nil, err
	}

	statInfo, err := os.Stat(path)
	if err != nil {
		return nil, NewProgramNotFoundError(err, name)
	}

	hash, err := ud.computeProgramHash(path)
	if err != nil {
		return nil, err
	}

	version := ud.detectProgramVersion(path, versionArgs)

	info := &ProgramInfo{
		Path:    path,
		Mode:    statInfo.Mode(),
		Version: version,
		SHA256:  hash,
	}

	ud.logger.Debug().
		Str(logFields.name, name).
		Str(logFields.path, info.Path).
		Str(logFields.hash, info.SHA256).
		Str(logFields.version, info.Version).
		Msg("identified program details")

	return info, nil
}
