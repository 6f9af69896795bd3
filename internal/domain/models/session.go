package models

// SessionState is the locally persisted session flags. The session itself is
// derived: it is valid only while LoggedIn is set and CredentialSignature
// matches the signature of the current authoritative credentials.
type SessionState struct {
	LoggedIn            bool   `json:"logged_in"`
	CredentialSignature string `json:"credential_signature"`
}
