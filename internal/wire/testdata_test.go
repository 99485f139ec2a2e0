package wire

import (
	"encoding/binary"

	"github.com/dnsscience/resolverd/internal/record"
)

// buildSyntheticResponse constructs the 349-octet fixture described in
// spec.md §8 scenario 1/2: a response to id=25 for www.example.com/A with
// two answers (A, CNAME), three authorities (NS, NS, SOA) and two
// additional records (MX, AAAA). Every name in this fixture is spelled out
// in full — no compression pointers — which is what makes the exact byte
// offsets in the spec (33, 64, 109, 149, 189, 263, 306, 349) arithmetic.
func buildSyntheticResponse() []byte {
	var buf []byte

	appendHeader := func(id uint16, an, ns, ar uint16) {
		h := make([]byte, headerSize)
		binary.BigEndian.PutUint16(h[0:2], id)
		binary.BigEndian.PutUint16(h[2:4], 0x0100)
		binary.BigEndian.PutUint16(h[4:6], 1)
		binary.BigEndian.PutUint16(h[6:8], an)
		binary.BigEndian.PutUint16(h[8:10], ns)
		binary.BigEndian.PutUint16(h[10:12], ar)
		buf = append(buf, h...)
	}

	appendName := func(name string) {
		enc, err := EncodeName(name)
		if err != nil {
			panic(err)
		}
		buf = append(buf, enc...)
	}

	appendU16 := func(v uint16) {
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, v)
		buf = append(buf, b...)
	}
	appendU32 := func(v uint32) {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, v)
		buf = append(buf, b...)
	}

	appendRRHeader := func(owner string, rtype record.Type, rdlength uint16) {
		appendName(owner)
		appendU16(uint16(rtype))
		appendU16(1) // class IN
		appendU32(3600)
		appendU16(rdlength)
	}

	appendHeader(25, 2, 3, 2)

	// Question: www.example.com / A / IN
	appendName("www.example.com")
	appendU16(uint16(record.A))
	appendU16(1)

	// Answer[0]: A www.example.com -> 1.2.3.4
	appendRRHeader("www.example.com", record.A, 4)
	buf = append(buf, 1, 2, 3, 4)

	// Answer[1]: CNAME bad.example.com -> good.example.com
	goodName, _ := EncodeName("good.example.com")
	appendRRHeader("bad.example.com", record.CNAME, uint16(len(goodName)))
	buf = append(buf, goodName...)

	// Authority[0]: NS example.com -> ns1.example.com
	ns1Name, _ := EncodeName("ns1.example.com")
	appendRRHeader("example.com", record.NS, uint16(len(ns1Name)))
	buf = append(buf, ns1Name...)

	// Authority[1]: NS example.com -> ns2.example.com
	ns2Name, _ := EncodeName("ns2.example.com")
	appendRRHeader("example.com", record.NS, uint16(len(ns2Name)))
	buf = append(buf, ns2Name...)

	// Authority[2]: SOA example.com, mname=master.example.com
	mname, _ := EncodeName("master.example.com")
	rname, _ := EncodeName("admin.com")
	soaRDLen := len(mname) + len(rname) + 20
	appendRRHeader("example.com", record.SOA, uint16(soaRDLen))
	buf = append(buf, mname...)
	buf = append(buf, rname...)
	appendU32(2024010101) // serial
	appendU32(3600)       // refresh
	appendU32(900)        // retry
	appendU32(604800)     // expire
	appendU32(300)        // minimum

	// Additional[0]: MX example.com -> mail.example.com, preference discarded
	mailName, _ := EncodeName("mail.example.com")
	appendRRHeader("example.com", record.MX, uint16(2+len(mailName)))
	appendU16(10) // preference
	buf = append(buf, mailName...)

	// Additional[1]: AAAA www.example.com -> 1..16
	appendRRHeader("www.example.com", record.AAAA, 16)
	for i := 1; i <= 16; i++ {
		buf = append(buf, byte(i))
	}

	return buf
}
