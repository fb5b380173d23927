package connection

// TLSMaterial bundles the raw certificate material for an encrypted
// connection. A nil *TLSMaterial means TLS must not be negotiated from
// supplied material.
type TLSMaterial struct {
	CA         []byte `json:"ca,omitempty"`
	Cert       []byte `json:"cert,omitempty"`
	Key        []byte `json:"key,omitempty"`
	Passphrase []byte `json:"passphrase,omitempty"`
}

// TLSSource is one TLS field, given either inline or as a file reference.
// Inline always takes precedence.
type TLSSource struct {
	Inline []byte
	File   string
}

// IsSet reports whether either form is configured
func (s TLSSource) IsSet() bool {
	return len(s.Inline) > 0 || s.File != ""
}

// TLSRequest describes which TLS fields to assemble
type TLSRequest struct {
	CA         TLSSource
	Cert       TLSSource
	Key        TLSSource
	Passphrase string
}

// HasClientCertificate reports whether both halves of a client key pair are present
func (m *TLSMaterial) HasClientCertificate() bool {
	return m != nil && len(m.Cert) > 0 && len(m.Key) > 0
}
