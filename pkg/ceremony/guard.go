// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package ceremony

import (
	"fmt"
	"regexp"
)

var dottedQuad = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// CheckSecureContext reports whether the given host and scheme are eligible
// for credential operations. It catches the one operationally common
// misconfiguration: opening the site by raw IPv4 address over plain HTTP,
// which the platform credential manager silently refuses. It does not try to
// reproduce the platform's full secure-context rules.
//
// Returns nil when allowed, or an error wrapping ErrInsecureContext with an
// actionable message naming the loopback alternative.
func CheckSecureContext(host, scheme string) error {
	if scheme == "https" || host == "localhost" {
		return nil
	}
	if dottedQuad.MatchString(host) {
		return fmt.Errorf(
			"%w: the site was opened as %s://%s; open it as %s://localhost or serve it over https",
			ErrInsecureContext, scheme, host, scheme)
	}
	return nil
}
