// SPDX-License-Identifier: Apache-2.0

package version

import (
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/joomcode/errorx"
)

// numberRe extracts the first version-shaped token from free form program
// output, such as "Nmap version 7.94 ( https://nmap.org )".
var numberRe = regexp.MustCompile(`v?\d+(\.\d+){0,2}(-[0-9A-Za-z.+~-]+)?`)

// Extract returns the first version-shaped token found in raw program
// output, normalized to semver form when it parses. The boolean reports
// whether a token was found at all.
func Extract(raw string) (string, bool) {
	token := numberRe.FindString(raw)
	if token == "" {
		return "", false
	}

	v, err := semver.NewVersion(token)
	if err != nil {
		// keep the raw token when it is version shaped but not strict semver
		return token, true
	}

	return v.String(), true
}

// AtLeast reports whether the version embedded in raw output is at least
// the given minimum. It errors when either side fails to parse.
func AtLeast(raw string, minimum string) (bool, error) {
	token, ok := Extract(raw)
	if !ok {
		return false, errorx.IllegalFormat.New("no version token found in %q", raw)
	}

	v, err := semver.NewVersion(token)
	if err != nil {
		return false, errorx.IllegalFormat.Wrap(err, "failed to parse version %q", token)
	}

	min, err := semver.NewVersion(minimum)
	if err != nil {
		return false, errorx.IllegalFormat.Wrap(err, "failed to parse minimum version %q", minimum)
	}

	return !v.LessThan(min), nil
}
