package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dbmigrate/internal/application/resolver"
	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/test/helpers"
)

func TestTLSLoader_EmptyRequest(t *testing.T) {
	loader := resolver.NewTLSLoader(helpers.NewCountingFs(), nil)

	material, err := loader.Load(connection.TLSRequest{})

	require.NoError(t, err)
	assert.Nil(t, material)
}

func TestTLSLoader_EmptyFileCountsAsAbsent(t *testing.T) {
	fs := helpers.NewCountingFs()
	fs.WriteFile(t, "/empty.pem", "")
	loader := resolver.NewTLSLoader(fs, nil)

	material, err := loader.Load(connection.TLSRequest{
		CA:         connection.TLSSource{File: "/empty.pem"},
		Passphrase: "secret",
	})

	require.NoError(t, err)
	assert.Nil(t, material)
	assert.Equal(t, 1, fs.Reads("/empty.pem"))
}

func TestTLSLoader_BinarySafe(t *testing.T) {
	fs := helpers.NewCountingFs()
	blob := string([]byte{0x00, 0xff, 0x10, 0x00})
	fs.WriteFile(t, "/key.der", blob)
	loader := resolver.NewTLSLoader(fs, nil)

	material, err := loader.Load(connection.TLSRequest{Key: connection.TLSSource{File: "/key.der"}})

	require.NoError(t, err)
	assert.Equal(t, []byte(blob), material.Key)
}

func TestTLSLoader_StopsAtFirstFailure(t *testing.T) {
	fs := helpers.NewCountingFs()
	fs.WriteFile(t, "/key.pem", "KEY")
	loader := resolver.NewTLSLoader(fs, nil)

	_, err := loader.Load(connection.TLSRequest{
		CA:  connection.TLSSource{File: "/missing-ca.pem"},
		Key: connection.TLSSource{File: "/key.pem"},
	})

	require.Error(t, err)
	assert.Equal(t, 0, fs.Reads("/key.pem"))
}

func TestTLSLoader_MixedInlineAndFile(t *testing.T) {
	fs := helpers.NewCountingFs()
	fs.WriteFile(t, "/cert.pem", "CERT")
	loader := resolver.NewTLSLoader(fs, nil)

	material, err := loader.Load(connection.TLSRequest{
		CA:         connection.TLSSource{Inline: []byte("CA")},
		Cert:       connection.TLSSource{File: "/cert.pem"},
		Passphrase: "pw",
	})

	require.NoError(t, err)
	assert.Equal(t, &connection.TLSMaterial{
		CA:         []byte("CA"),
		Cert:       []byte("CERT"),
		Passphrase: []byte("pw"),
	}, material)
}
