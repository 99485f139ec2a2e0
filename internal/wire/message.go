package wire

import (
	"encoding/binary"
	"errors"

	"github.com/dnsscience/resolverd/internal/record"
)

const headerSize = 12 // id|flags|qdcount|ancount|nscount|arcount, each 16 bits

// ErrIDMismatch is returned by ParseResponse when the reply's transaction
// ID doesn't match the query that was sent; per §4.3 step 2 the reply is
// silently dropped.
var ErrIDMismatch = errors.New("wire: response id mismatch")

// ErrParseFailed covers every other reason a response could not be
// parsed: truncation, a malformed name, or a record the decoder could not
// make sense of.
var ErrParseFailed = errors.New("wire: could not parse response")

// Response is a parsed DNS message: the echoed question plus the three
// record sections, in wire order. It is never mutated after ParseResponse
// returns it.
type Response struct {
	QueryName string
	QueryType record.Type

	Answers    []record.Record
	Authority  []record.Record
	Additional []record.Record
}

// GetAnswer returns the first record in Answers whose owner name and type
// both match, or false if none does.
func (r *Response) GetAnswer(name string, t record.Type) (record.Record, bool) {
	for _, rec := range r.Answers {
		if rec.Name == name && rec.Type == t {
			return rec, true
		}
	}
	return record.Record{}, false
}

// BuildQuery constructs a standard query for hostname/qtype with the given
// transaction id. Flags are 0x0100 (opcode QUERY, RD=1, everything else
// zero). On the recursion-desired bit: this
// resolver never depends on a server honoring RD (it always walks the
// referral chain itself), but RD=1 matches what most authoritative servers
// expect from any client and keeps the wire format identical to the
// original distilled implementation's fixed-format query.
func BuildQuery(id uint16, hostname string, qtype record.Type) ([]byte, error) {
	name, err := EncodeName(hostname)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, headerSize, headerSize+len(name)+4)
	binary.BigEndian.PutUint16(buf[0:2], id)
	binary.BigEndian.PutUint16(buf[2:4], 0x0100)
	binary.BigEndian.PutUint16(buf[4:6], 1) // qdcount
	// ancount, nscount, arcount are already zero

	buf = append(buf, name...)

	qtypeClass := make([]byte, 4)
	binary.BigEndian.PutUint16(qtypeClass[0:2], uint16(qtype))
	binary.BigEndian.PutUint16(qtypeClass[2:4], 1) // qclass = IN
	buf = append(buf, qtypeClass...)

	return buf, nil
}

// ParseResponse validates the header, checks the transaction id, and
// decodes the question and all three record sections. qdcount is assumed
// to be 1, matching §4.3. Extra trailing bytes after the additional
// section are ignored; a section running past the end of msg aborts the
// whole parse.
func ParseResponse(msg []byte, expectedID uint16) (*Response, error) {
	if len(msg) < headerSize {
		return nil, ErrParseFailed
	}

	id := binary.BigEndian.Uint16(msg[0:2])
	if id != expectedID {
		return nil, ErrIDMismatch
	}

	qdcount := binary.BigEndian.Uint16(msg[4:6])
	ancount := binary.BigEndian.Uint16(msg[6:8])
	nscount := binary.BigEndian.Uint16(msg[8:10])
	arcount := binary.BigEndian.Uint16(msg[10:12])
	_ = qdcount // assumed to be 1 per §4.3

	queryName, pos, err := DecodeName(msg, headerSize)
	if err != nil {
		return nil, ErrParseFailed
	}
	if pos+4 > len(msg) {
		return nil, ErrParseFailed
	}
	qtype := record.Type(binary.BigEndian.Uint16(msg[pos : pos+2]))
	// qclass at msg[pos+2:pos+4] is always 1 (Internet); not retained.
	pos += 4

	resp := &Response{QueryName: queryName, QueryType: qtype}

	resp.Answers, pos, err = parseSection(msg, pos, int(ancount))
	if err != nil {
		return nil, err
	}
	resp.Authority, pos, err = parseSection(msg, pos, int(nscount))
	if err != nil {
		return nil, err
	}
	resp.Additional, _, err = parseSection(msg, pos, int(arcount))
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func parseSection(msg []byte, start, count int) ([]record.Record, int, error) {
	recs := make([]record.Record, 0, count)
	pos := start
	for i := 0; i < count; i++ {
		rec, next, err := decodeRecord(msg, pos)
		if err != nil {
			return nil, 0, ErrParseFailed
		}
		recs = append(recs, rec)
		pos = next
	}
	return recs, pos, nil
}
