package source

import "strconv"

type portKind int

const (
	portUnset portKind = iota
	portNumber
	portText
)

// Port is a legacy port value, which may be configured as a number or as a
// string. The zero value means no port was configured.
type Port struct {
	kind   portKind
	number int
	text   string
}

// PortNumber creates a numeric port
func PortNumber(n int) Port {
	return Port{kind: portNumber, number: n}
}

// PortString creates a textual port which is parsed at resolution time
func PortString(s string) Port {
	return Port{kind: portText, text: s}
}

// IsSet reports whether a port was configured
func (p Port) IsSet() bool {
	return p.kind != portUnset
}

// Number returns the numeric value and whether the port was given as a number
func (p Port) Number() (int, bool) {
	return p.number, p.kind == portNumber
}

// Text returns the textual value and whether the port was given as a string
func (p Port) Text() (string, bool) {
	return p.text, p.kind == portText
}

func (p Port) String() string {
	switch p.kind {
	case portNumber:
		return strconv.Itoa(p.number)
	case portText:
		return p.text
	default:
		return ""
	}
}
