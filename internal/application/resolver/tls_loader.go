package resolver

import (
	"github.com/spf13/afero"

	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/internal/domain/shared"
)

// TLS field names used in errors and metrics
const (
	fieldCA   = "ca"
	fieldCert = "cert"
	fieldKey  = "key"
)

// TLSLoader assembles TLS material from inline values or files read through
// the injected filesystem. It holds no state besides its collaborators and is
// safe for concurrent use.
type TLSLoader struct {
	fs      afero.Fs
	metrics Recorder
}

// NewTLSLoader creates a loader reading files from fs. A nil recorder disables metrics.
func NewTLSLoader(fs afero.Fs, metrics Recorder) *TLSLoader {
	if metrics == nil {
		metrics = NopRecorder{}
	}
	return &TLSLoader{fs: fs, metrics: metrics}
}

// Load resolves each field of the request, preferring inline values. It
// returns nil when none of CA, Cert and Key resolved to non-empty content.
// The passphrase is never read from a file.
func (l *TLSLoader) Load(req connection.TLSRequest) (*connection.TLSMaterial, error) {
	ca, err := l.resolve(fieldCA, req.CA)
	if err != nil {
		return nil, err
	}
	cert, err := l.resolve(fieldCert, req.Cert)
	if err != nil {
		return nil, err
	}
	key, err := l.resolve(fieldKey, req.Key)
	if err != nil {
		return nil, err
	}

	if len(ca) == 0 && len(cert) == 0 && len(key) == 0 {
		return nil, nil
	}

	material := &connection.TLSMaterial{CA: ca, Cert: cert, Key: key}
	if req.Passphrase != "" {
		material.Passphrase = []byte(req.Passphrase)
	}
	return material, nil
}

func (l *TLSLoader) resolve(field string, src connection.TLSSource) ([]byte, error) {
	if len(src.Inline) > 0 {
		return src.Inline, nil
	}
	if src.File == "" {
		return nil, nil
	}

	data, err := afero.ReadFile(l.fs, src.File)
	l.metrics.RecordTLSFileRead(field, err == nil)
	if err != nil {
		return nil, shared.NewFileReadError(field, src.File, err)
	}
	return data, nil
}
