package wire

import (
	"encoding/binary"
	"errors"

	"github.com/dnsscience/resolverd/internal/record"
)

// ErrTruncated is returned when a record's header or RDATA runs past the
// end of the message.
var ErrTruncated = errors.New("wire: truncated record")

const rrFixedHeaderSize = 10 // type(16) class(16) ttl(32) rdlength(16)

// decodeRecord parses one resource record at offset and returns it along
// with the cursor immediately past the record. Every offset returned here
// points strictly past the record just parsed (spec §3 invariant).
//
// MX and SOA deliberately trust the inner name decode over the declared
// rdlength when they disagree — see the "MX/SOA cursor override" note in
// DESIGN.md / spec.md §9; AAAA always advances by exactly 16 octets
// regardless of rdlength.
func decodeRecord(msg []byte, offset int) (record.Record, int, error) {
	name, pos, err := DecodeName(msg, offset)
	if err != nil {
		return record.Record{}, 0, err
	}

	if pos+rrFixedHeaderSize > len(msg) {
		return record.Record{}, 0, ErrTruncated
	}
	rtype := record.Type(binary.BigEndian.Uint16(msg[pos : pos+2]))
	// class (msg[pos+2:pos+4]) is always 1 (Internet) on the wire, and ttl
	// (msg[pos+4:pos+8]) is parsed by the wire format but neither is part
	// of this resolver's Record value (spec §3) — skip straight to rdlength.
	rdlength := int(binary.BigEndian.Uint16(msg[pos+8 : pos+10]))

	rdataStart := pos + rrFixedHeaderSize
	rdataEnd := rdataStart + rdlength
	if rdataEnd > len(msg) {
		return record.Record{}, 0, ErrTruncated
	}

	switch rtype {
	case record.A:
		if rdataEnd-rdataStart != 4 {
			return record.Record{}, 0, ErrTruncated
		}
		var b [4]byte
		copy(b[:], msg[rdataStart:rdataEnd])
		return record.Record{Name: name, Type: record.A, Value: record.NewA(b)}, rdataEnd, nil

	case record.AAAA:
		rdataEnd = rdataStart + 16 // always 16 octets regardless of rdlength
		if rdataEnd > len(msg) {
			return record.Record{}, 0, ErrTruncated
		}
		var b [16]byte
		copy(b[:], msg[rdataStart:rdataEnd])
		return record.Record{Name: name, Type: record.AAAA, Value: record.NewAAAA(b)}, rdataEnd, nil

	case record.NS, record.CNAME:
		target, _, err := DecodeName(msg, rdataStart)
		if err != nil {
			return record.Record{}, 0, err
		}
		// Trust rdlength for the cursor here: NS/CNAME rdata is exactly the
		// encoded name, no padding to disagree about.
		return record.Record{Name: name, Type: rtype, Value: record.NewName(target)}, rdataEnd, nil

	case record.MX:
		if rdataStart+2 > len(msg) {
			return record.Record{}, 0, ErrTruncated
		}
		exchange, next, err := DecodeName(msg, rdataStart+2)
		if err != nil {
			return record.Record{}, 0, err
		}
		return record.Record{Name: name, Type: record.MX, Value: record.NewName(exchange)}, next, nil

	case record.SOA:
		mname, next, err := DecodeName(msg, rdataStart)
		if err != nil {
			return record.Record{}, 0, err
		}
		_, next, err = DecodeName(msg, next) // rname, discarded
		if err != nil {
			return record.Record{}, 0, err
		}
		if next+20 > len(msg) {
			return record.Record{}, 0, ErrTruncated
		}
		// serial, refresh, retry, expire, minimum: five 32-bit values,
		// parsed for cursor position only; the SOA value retains only mname.
		next += 20
		return record.Record{Name: name, Type: record.SOA, Value: record.NewName(mname)}, next, nil

	default:
		return record.Record{Name: name, Type: rtype, Value: record.NewUnsupported()}, rdataEnd, nil
	}
}

// DecodeRecord is the public face of C2: "Creates a DNS record from the
// data in response starting at the given index, along with the index
// where the record's info ends." Per §4.2 step 5, any decoding error
// yields the ("error", 0, "Parse error") sentinel with the cursor left
// unchanged, rather than an error return — ParseResponse (§4.3) is the
// layer that turns a failed decode into a terminal parse failure.
func DecodeRecord(msg []byte, offset int) (record.Record, int) {
	rec, next, err := decodeRecord(msg, offset)
	if err != nil {
		return record.ErrorRecord(), offset
	}
	return rec, next
}
