package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	failColor   = color.New(color.FgRed)
)

// tlsSummary describes TLS material without exposing it
type tlsSummary struct {
	CABytes    int  `json:"ca_bytes,omitempty"`
	CertBytes  int  `json:"cert_bytes,omitempty"`
	Key        bool `json:"key"`
	Passphrase bool `json:"passphrase"`
}

// descriptorView is the display form of a redacted descriptor
type descriptorView struct {
	Driver           string      `json:"driver"`
	Path             string      `json:"path,omitempty"`
	ConnectionString string      `json:"connection_string,omitempty"`
	Host             string      `json:"host,omitempty"`
	Port             int         `json:"port,omitempty"`
	Database         string      `json:"database,omitempty"`
	User             string      `json:"user,omitempty"`
	Password         string      `json:"password,omitempty"`
	SSLMode          string      `json:"sslmode,omitempty"`
	TLS              *tlsSummary `json:"tls,omitempty"`
}

func newDescriptorView(desc *connection.Descriptor) descriptorView {
	d := desc.Redacted()
	view := descriptorView{Driver: string(d.Driver), Path: d.Path}
	if d.Postgres == nil {
		return view
	}

	pg := d.Postgres
	view.ConnectionString = pg.ConnectionString
	view.Host = pg.Host
	view.Port = pg.Port
	view.Database = pg.Database
	view.User = pg.User
	view.Password = pg.Password
	view.SSLMode = pg.SSLMode
	if pg.TLS != nil {
		view.TLS = &tlsSummary{
			CABytes:    len(pg.TLS.CA),
			CertBytes:  len(pg.TLS.Cert),
			Key:        len(pg.TLS.Key) > 0,
			Passphrase: len(pg.TLS.Passphrase) > 0,
		}
	}
	return view
}

// printDescriptor writes a human-readable block for one descriptor
func printDescriptor(w io.Writer, name string, desc *connection.Descriptor) {
	view := newDescriptorView(desc)

	headerColor.Fprintf(w, "%s database\n", name)
	fmt.Fprintf(w, "  Driver:            %s\n", view.Driver)
	if view.Driver == string(connection.DriverSQLite) {
		fmt.Fprintf(w, "  Path:              %s\n", view.Path)
		return
	}

	printField(w, "Connection String", view.ConnectionString)
	printField(w, "Host", view.Host)
	if view.Port != 0 {
		fmt.Fprintf(w, "  %-18s %d\n", "Port:", view.Port)
	}
	printField(w, "Database", view.Database)
	printField(w, "User", view.User)
	printField(w, "Password", view.Password)
	printField(w, "SSL Mode", view.SSLMode)

	if view.TLS == nil {
		fmt.Fprintf(w, "  %-18s none\n", "TLS:")
		return
	}
	fmt.Fprintf(w, "  %-18s ca=%dB cert=%dB key=%t passphrase=%t\n", "TLS:",
		view.TLS.CABytes, view.TLS.CertBytes, view.TLS.Key, view.TLS.Passphrase)
}

func printField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "  %-18s %s\n", label+":", value)
}
