package rules

import (
	"zonewarden/internal/types"
)

// combinationRule is one policy over the set of record types a document
// declares. Rules look only at which tags co-occur (plus the proxied flag
// and redirect config presence), never at record values. Every rule is
// evaluated against every document; each violated rule contributes its
// message.
type combinationRule struct {
	name     string
	violates func(d *types.Document) bool
	message  string
}

var combinationRules = []combinationRule{
	{
		name: "cname_sole_record",
		violates: func(d *types.Document) bool {
			return d.Records.Has(types.RecordTypeCNAME) && !d.Proxied && d.Records.Len() > 1
		},
		message: "CNAME must be the only record unless the domain is proxied",
	},
	{
		name: "ns_combines_only_with_ds",
		violates: func(d *types.Document) bool {
			if !d.Records.Has(types.RecordTypeNS) {
				return false
			}
			for _, rt := range d.Records.Tags() {
				if rt != types.RecordTypeNS && rt != types.RecordTypeDS {
					return true
				}
			}
			return false
		},
		message: "NS cannot be combined with any record other than DS",
	},
	{
		name: "ds_requires_ns",
		violates: func(d *types.Document) bool {
			return d.Records.Has(types.RecordTypeDS) && !d.Records.Has(types.RecordTypeNS)
		},
		message: "DS requires an NS record",
	},
	{
		name: "url_excludes_addresses",
		violates: func(d *types.Document) bool {
			if !d.Records.Has(types.RecordTypeURL) {
				return false
			}
			return d.Records.Has(types.RecordTypeA) ||
				d.Records.Has(types.RecordTypeAAAA) ||
				d.Records.Has(types.RecordTypeCNAME)
		},
		message: "URL cannot be combined with A, AAAA, or CNAME records",
	},
	{
		name: "redirect_requires_url",
		violates: func(d *types.Document) bool {
			return d.Redirect != nil && !d.Records.Has(types.RecordTypeURL)
		},
		message: "redirect configuration requires a URL record",
	},
}

// combinationViolations evaluates every combination rule against the
// document. Rules are independent; a document can violate several at once.
func combinationViolations(doc *types.Document) []string {
	var msgs []string
	for _, rule := range combinationRules {
		if rule.violates(doc) {
			msgs = append(msgs, rule.message)
		}
	}
	return msgs
}
