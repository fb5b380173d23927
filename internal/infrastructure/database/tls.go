package database

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
)

// NewTLSConfig builds a client TLS configuration from resolved material.
// Server verification is skipped only when no CA was supplied, matching
// libpq's sslmode=require.
func NewTLSConfig(material *connection.TLSMaterial, serverName string) (*tls.Config, error) {
	if material == nil {
		return nil, errors.New("no TLS material")
	}

	cfg := &tls.Config{
		ServerName: serverName,
		MinVersion: tls.VersionTLS12,
	}

	if len(material.CA) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(material.CA) {
			return nil, errors.New("no certificates found in CA material")
		}
		cfg.RootCAs = pool
	} else {
		cfg.InsecureSkipVerify = true
	}

	if len(material.Cert) > 0 || len(material.Key) > 0 {
		if !material.HasClientCertificate() {
			return nil, errors.New("client certificate and key must be supplied together")
		}
		keyPEM, err := decryptKey(material.Key, material.Passphrase)
		if err != nil {
			return nil, err
		}
		pair, err := tls.X509KeyPair(material.Cert, keyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to load client key pair: %w", err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	}

	return cfg, nil
}

// decryptKey decrypts a passphrase-protected PEM key. Unencrypted keys are
// returned unchanged.
func decryptKey(key, passphrase []byte) ([]byte, error) {
	block, _ := pem.Decode(key)
	//nolint:staticcheck // legacy encrypted PEM is the format sslpassword protects
	if block == nil || !x509.IsEncryptedPEMBlock(block) {
		return key, nil
	}
	if len(passphrase) == 0 {
		return nil, errors.New("client key is encrypted but no passphrase was supplied")
	}

	//nolint:staticcheck // see above
	der, err := x509.DecryptPEMBlock(block, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt client key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
}
