// Package record defines the value model for a single parsed DNS resource
// record: the closed set of record types this resolver understands, and the
// tagged value a record's RDATA decodes into.
package record

import (
	"fmt"
	"net"
	"strings"
)

// Type is the wire-level record type tag (RFC 1035 §3.2.2, plus AAAA from
// RFC 3596). Unknown codes are preserved as an opaque numeric variant
// rather than rejected.
type Type uint16

const (
	A     Type = 1
	NS    Type = 2
	CNAME Type = 5
	SOA   Type = 6
	MX    Type = 15
	AAAA  Type = 28
)

// String renders the type the way log lines and error messages want it.
func (t Type) String() string {
	switch t {
	case A:
		return "A"
	case NS:
		return "NS"
	case CNAME:
		return "CNAME"
	case SOA:
		return "SOA"
	case MX:
		return "MX"
	case AAAA:
		return "AAAA"
	default:
		return fmt.Sprintf("TYPE%d", uint16(t))
	}
}

// Value is the tagged payload of a record's RDATA. Exactly one of the
// typed fields is meaningful, selected by the owning Record's Type.
type Value struct {
	addr4 [4]byte
	addr6 [16]byte
	name  string
	kind  valueKind
}

type valueKind uint8

const (
	kindName valueKind = iota
	kindA
	kindAAAA
	kindUnsupported
)

// NewA builds an A record value from its four octets.
func NewA(b [4]byte) Value { return Value{kind: kindA, addr4: b} }

// NewAAAA builds an AAAA record value from its sixteen octets.
func NewAAAA(b [16]byte) Value { return Value{kind: kindAAAA, addr6: b} }

// NewName builds a value holding a dotted hostname, used by NS, CNAME, MX
// (exchange only) and SOA (mname only).
func NewName(name string) Value { return Value{kind: kindName, name: name} }

// NewUnsupported builds the placeholder value emitted for a record type
// this resolver does not model.
func NewUnsupported() Value { return Value{kind: kindUnsupported} }

// Name returns the dotted-name payload, if this value holds one.
func (v Value) Name() (string, bool) {
	if v.kind == kindName {
		return v.name, true
	}
	return "", false
}

// String renders the value the way the original DNSRecord.value_string()
// projection does: dotted decimal for A, bracketed hex groups for AAAA,
// and the stored string for everything else.
func (v Value) String() string {
	switch v.kind {
	case kindA:
		return net.IP(v.addr4[:]).String()
	case kindAAAA:
		groups := make([]string, 8)
		for i := 0; i < 8; i++ {
			groups[i] = fmt.Sprintf("%02x%02x", v.addr6[2*i], v.addr6[2*i+1])
		}
		return "[" + strings.Join(groups, ":") + "]"
	case kindName:
		return v.name
	default:
		return "Unsupported record type"
	}
}

// Record is an immutable parsed DNS resource record.
type Record struct {
	Name  string
	Type  Type
	Value Value
}

// ErrorRecord is the sentinel C2 emits when a record fails to decode: owner
// "error", type 0, value "Parse error". The response parser treats a failed
// record decode as a terminal parse failure.
func ErrorRecord() Record {
	return Record{Name: "error", Type: 0, Value: NewName("Parse error")}
}
