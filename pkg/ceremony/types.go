// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package ceremony

import (
	"github.com/poolbet/go-passkey/pkg/websafe"
)

// CredentialDescriptor identifies a previously registered credential. The
// relying party uses lists of these as the exclusion list during
// registration and the allow-list during authentication.
type CredentialDescriptor struct {
	Type       string        `json:"type"`
	ID         websafe.Bytes `json:"id"`
	Transports []string      `json:"transports,omitempty"`
}

// RelyingPartyEntity describes the relying party in creation options.
type RelyingPartyEntity struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// UserEntity describes the account a new credential is bound to.
type UserEntity struct {
	ID          websafe.Bytes `json:"id"`
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName"`
}

// CredentialParameter names an acceptable credential type and signature
// algorithm (COSE identifier).
type CredentialParameter struct {
	Type string `json:"type"`
	Alg  int    `json:"alg"`
}

// AuthenticatorSelection restricts which authenticators may take part in a
// registration. Relayed to the platform unmodified.
type AuthenticatorSelection struct {
	AuthenticatorAttachment string `json:"authenticatorAttachment,omitempty"`
	ResidentKey             string `json:"residentKey,omitempty"`
	RequireResidentKey      *bool  `json:"requireResidentKey,omitempty"`
	UserVerification        string `json:"userVerification,omitempty"`
}

// CreationOptions is the server-issued structure that begins a registration
// ceremony. Binary-bearing fields arrive as base64url text and are decoded
// to raw bytes at the JSON boundary, so the structure handed to the platform
// credential manager already carries binary values.
type CreationOptions struct {
	Challenge              websafe.Bytes           `json:"challenge"`
	RP                     RelyingPartyEntity      `json:"rp"`
	User                   UserEntity              `json:"user"`
	PubKeyCredParams       []CredentialParameter   `json:"pubKeyCredParams"`
	Timeout                int                     `json:"timeout,omitempty"`
	ExcludeCredentials     []CredentialDescriptor  `json:"excludeCredentials,omitempty"`
	AuthenticatorSelection *AuthenticatorSelection `json:"authenticatorSelection,omitempty"`
	Attestation            string                  `json:"attestation,omitempty"`
}

// RequestOptions is the server-issued structure that begins an
// authentication ceremony. An empty or absent allow-list requests a
// discoverable-credential (usernameless) ceremony.
type RequestOptions struct {
	Challenge        websafe.Bytes          `json:"challenge"`
	Timeout          int                    `json:"timeout,omitempty"`
	RPID             string                 `json:"rpId,omitempty"`
	AllowCredentials []CredentialDescriptor `json:"allowCredentials,omitempty"`
	UserVerification string                 `json:"userVerification,omitempty"`
}

// Attestation is the credential produced by the platform on registration.
type Attestation struct {
	ID       string              `json:"id"`
	RawID    websafe.Bytes       `json:"rawId"`
	Type     string              `json:"type"`
	Response AttestationResponse `json:"response"`
}

// AttestationResponse carries the authenticator's registration output.
type AttestationResponse struct {
	ClientDataJSON    websafe.Bytes `json:"clientDataJSON"`
	AttestationObject websafe.Bytes `json:"attestationObject"`
}

// Assertion is the signed challenge produced by the platform on
// authentication.
type Assertion struct {
	ID       string            `json:"id"`
	RawID    websafe.Bytes     `json:"rawId"`
	Type     string            `json:"type"`
	Response AssertionResponse `json:"response"`
}

// AssertionResponse carries the authenticator's authentication output.
// UserHandle is nil when the authenticator did not return one; it is still
// serialized as an explicit JSON null, never omitted, so the relying party
// can distinguish "no user handle" from a missing field.
type AssertionResponse struct {
	ClientDataJSON    websafe.Bytes  `json:"clientDataJSON"`
	AuthenticatorData websafe.Bytes  `json:"authenticatorData"`
	Signature         websafe.Bytes  `json:"signature"`
	UserHandle        *websafe.Bytes `json:"userHandle"`
}

// ServerResult is the terminal response of a complete call.
type ServerResult struct {
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// registrationUpload is the body of the registration complete call: the
// encoded attestation plus the user-supplied device label.
type registrationUpload struct {
	Attestation
	DeviceName string `json:"device_name"`
}

// loginHint is the body of the authentication begin call. The username key
// is always present; an empty value requests the usernameless flow.
type loginHint struct {
	Username string `json:"username"`
}
