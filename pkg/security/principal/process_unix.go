// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package principal

import (
	"os"
	"os/user"
)

// unixProcess is the unix implementation of Process. It captures the
// effective uid at construction time; a setuid transition after that is not
// observed.
type unixProcess struct {
	uid      int
	username string
}

var _ Process = (*unixProcess)(nil)

func (p *unixProcess) Uid() int {
	return p.uid
}

func (p *unixProcess) Username() string {
	return p.username
}

func (p *unixProcess) IsSuperuser() bool {
	return p.uid == 0
}

// currentUser is a seam for tests; user.Current caches internally so there
// is no cost to calling it per lookup.
var currentUser = user.Current

// Current returns the principal of the calling process. The username is
// best effort: a failed user database lookup still yields a usable
// principal because the uid alone decides the privilege question.
func Current() (Process, error) {
	p := &unixProcess{uid: os.Geteuid()}

	u, err := currentUser()
	if err != nil {
		return p, LookupError.Wrap(err, "failed to resolve current user from the user database")
	}

	p.username = u.Username
	return p, nil
}
