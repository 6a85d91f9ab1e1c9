// Package zone renders conformant registration documents into DNS resource
// records and zone file text. Rendering is pure construction: nothing here
// resolves names or touches the network.
package zone

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"

	"github.com/miekg/dns"

	"zonewarden/internal/types"
)

// Builder renders documents for one shared apex domain.
type Builder struct {
	Origin string // apex domain all documents register under
	TTL    uint32 // TTL applied to every record
}

// NewBuilder creates a Builder for the given origin and TTL.
func NewBuilder(origin string, ttl uint32) *Builder {
	return &Builder{Origin: origin, TTL: ttl}
}

// owner returns the fully qualified owner name for a document.
func (b *Builder) owner(name string) string {
	return dns.Fqdn(name + "." + b.Origin)
}

// RRs builds the resource records declared by one document. Only call it
// with documents that validated clean; values that do not decode are
// skipped. URL records and redirect configs are HTTP-layer concerns and
// produce no RRs. Proxied documents produce no address records, since an
// intermediary fronts them.
func (b *Builder) RRs(doc *types.Document) []dns.RR {
	var rrs []dns.RR
	for _, entry := range doc.Records.Entries() {
		rrs = append(rrs, b.build(doc, entry)...)
	}
	return rrs
}

func (b *Builder) build(doc *types.Document, entry types.RecordEntry) []dns.RR {
	hdr := dns.RR_Header{
		Name:  b.owner(doc.Name),
		Class: dns.ClassINET,
		Ttl:   b.TTL,
	}

	switch entry.Type {
	case types.RecordTypeA:
		if doc.Proxied {
			return nil
		}
		hdr.Rrtype = dns.TypeA
		var rrs []dns.RR
		for _, v := range decodeStrings(entry.Value) {
			if ip := net.ParseIP(v); ip != nil {
				rrs = append(rrs, &dns.A{Hdr: hdr, A: ip})
			}
		}
		return rrs

	case types.RecordTypeAAAA:
		if doc.Proxied {
			return nil
		}
		hdr.Rrtype = dns.TypeAAAA
		var rrs []dns.RR
		for _, v := range decodeStrings(entry.Value) {
			if ip := net.ParseIP(v); ip != nil {
				rrs = append(rrs, &dns.AAAA{Hdr: hdr, AAAA: ip})
			}
		}
		return rrs

	case types.RecordTypeCNAME:
		var target string
		if err := json.Unmarshal(entry.Value, &target); err != nil || target == "" {
			return nil
		}
		hdr.Rrtype = dns.TypeCNAME
		return []dns.RR{&dns.CNAME{Hdr: hdr, Target: dns.Fqdn(target)}}

	case types.RecordTypeMX:
		hdr.Rrtype = dns.TypeMX
		var rrs []dns.RR
		for i, v := range decodeStrings(entry.Value) {
			rrs = append(rrs, &dns.MX{
				Hdr:        hdr,
				Preference: uint16(10 * (i + 1)),
				Mx:         dns.Fqdn(v),
			})
		}
		return rrs

	case types.RecordTypeNS:
		hdr.Rrtype = dns.TypeNS
		var rrs []dns.RR
		for _, v := range decodeStrings(entry.Value) {
			rrs = append(rrs, &dns.NS{Hdr: hdr, Ns: dns.Fqdn(v)})
		}
		return rrs

	case types.RecordTypeTXT:
		texts := decodeTXT(entry.Value)
		if len(texts) == 0 {
			return nil
		}
		hdr.Rrtype = dns.TypeTXT
		return []dns.RR{&dns.TXT{Hdr: hdr, Txt: texts}}

	case types.RecordTypeCAA:
		hdr.Rrtype = dns.TypeCAA
		var values []struct {
			Flags uint8  `json:"flags"`
			Tag   string `json:"tag"`
			Value string `json:"value"`
		}
		if err := json.Unmarshal(entry.Value, &values); err != nil {
			return nil
		}
		var rrs []dns.RR
		for _, v := range values {
			if v.Tag == "" {
				continue
			}
			rrs = append(rrs, &dns.CAA{Hdr: hdr, Flag: v.Flags, Tag: v.Tag, Value: v.Value})
		}
		return rrs

	case types.RecordTypeSRV:
		hdr.Rrtype = dns.TypeSRV
		var values []struct {
			Priority uint16 `json:"priority"`
			Weight   uint16 `json:"weight"`
			Port     uint16 `json:"port"`
			Target   string `json:"target"`
		}
		if err := json.Unmarshal(entry.Value, &values); err != nil {
			return nil
		}
		var rrs []dns.RR
		for _, v := range values {
			if v.Target == "" {
				continue
			}
			rrs = append(rrs, &dns.SRV{
				Hdr:      hdr,
				Priority: v.Priority,
				Weight:   v.Weight,
				Port:     v.Port,
				Target:   dns.Fqdn(v.Target),
			})
		}
		return rrs

	case types.RecordTypeDS:
		hdr.Rrtype = dns.TypeDS
		var values []types.DSRecord
		if err := json.Unmarshal(entry.Value, &values); err != nil {
			return nil
		}
		var rrs []dns.RR
		for _, v := range values {
			if v.Digest == "" {
				continue
			}
			rrs = append(rrs, &dns.DS{
				Hdr:        hdr,
				KeyTag:     uint16(v.KeyTag),
				Algorithm:  uint8(v.Algorithm),
				DigestType: uint8(v.DigestType),
				Digest:     v.Digest,
			})
		}
		return rrs
	}
	return nil
}

// WriteZone writes zone file text for the given documents: $ORIGIN and $TTL
// directives followed by every document's records.
func (b *Builder) WriteZone(w io.Writer, docs []*types.Document) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "$ORIGIN %s\n$TTL %d\n", dns.Fqdn(b.Origin), b.TTL); err != nil {
		return err
	}
	for _, doc := range docs {
		for _, rr := range b.RRs(doc) {
			if _, err := fmt.Fprintln(bw, rr.String()); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func decodeStrings(raw json.RawMessage) []string {
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}

// decodeTXT accepts a bare string or an array of strings.
func decodeTXT(raw json.RawMessage) []string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	return decodeStrings(raw)
}
