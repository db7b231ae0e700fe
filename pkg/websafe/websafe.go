// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package websafe implements the unpadded base64url encoding used for every
// binary field that crosses the wire during a WebAuthn ceremony.
//
// Encoding uses the standard base64 alphabet with '+' replaced by '-',
// '/' replaced by '_', and the '=' padding stripped. Decoding reconstructs
// the padding from the text length before decoding, so Decode(Encode(b)) == b
// for any byte sequence, including the empty one.
package websafe

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when text cannot be decoded as unpadded base64url.
var ErrMalformed = errors.New("malformed base64url data")

// Encode returns the unpadded base64url representation of b.
func Encode(b []byte) string {
	s := base64.StdEncoding.EncodeToString(b)
	s = strings.ReplaceAll(s, "+", "-")
	s = strings.ReplaceAll(s, "/", "_")
	return strings.TrimRight(s, "=")
}

// Decode reverses Encode. The padding length is reconstructed from
// len(s) mod 4; a remainder of 1 can never be produced by the encoder and
// is rejected, as is any character outside the base64url alphabet.
func Decode(s string) ([]byte, error) {
	if strings.ContainsAny(s, "+/=") {
		return nil, fmt.Errorf("%w: input is not websafe", ErrMalformed)
	}
	switch len(s) % 4 {
	case 1:
		return nil, fmt.Errorf("%w: invalid length %d", ErrMalformed, len(s))
	case 2:
		s += "=="
	case 3:
		s += "="
	}
	s = strings.ReplaceAll(s, "-", "+")
	s = strings.ReplaceAll(s, "_", "/")
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return b, nil
}

// Bytes is a byte slice that marshals to and from JSON as unpadded base64url
// text. Wire structures use it so binary-bearing fields are converted at the
// JSON boundary in both directions.
type Bytes []byte

// MarshalJSON encodes the bytes as a base64url JSON string.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(Encode(b))
}

// UnmarshalJSON decodes a base64url JSON string. JSON null yields nil.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: expected string, got %s", ErrMalformed, data)
	}
	decoded, err := Decode(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// String returns the base64url text form, which is how the value appears on
// the wire.
func (b Bytes) String() string {
	return Encode(b)
}
