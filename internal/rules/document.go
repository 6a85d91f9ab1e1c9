// Package rules implements the validation rule engine for registration
// documents: the record-combination policy, address and hostname validators,
// structural record checks, and the redirect-path validator.
//
// Every check is a pure function of its inputs. Violations are values, never
// errors, and no check consults the network. Checks do not short-circuit:
// one validation pass surfaces the complete set of problems in a document.
package rules

import (
	"fmt"

	"zonewarden/internal/types"
)

// Validate runs every applicable check over one document and returns all
// violations found. A combination violation does not stop field checks, and
// one bad array element does not hide the next. An empty result means the
// document is conformant.
func Validate(doc *types.Document) []types.Violation {
	var msgs []string

	msgs = append(msgs, combinationViolations(doc)...)

	for _, rt := range doc.Records.Duplicates() {
		msgs = append(msgs, fmt.Sprintf("duplicate record type: %s", rt))
	}
	for _, key := range doc.Records.Unknown() {
		msgs = append(msgs, fmt.Sprintf("unknown record type: %s", key))
	}

	for _, entry := range doc.Records.Entries() {
		msgs = append(msgs, checkEntry(doc, entry)...)
	}

	if doc.Redirect != nil {
		msgs = append(msgs, checkRedirect(doc.Redirect, baseURLOf(doc))...)
	}

	if len(msgs) == 0 {
		return nil
	}
	violations := make([]types.Violation, len(msgs))
	for i, m := range msgs {
		violations[i] = types.Violation{Document: doc.Name, Message: m}
	}
	return violations
}

// checkEntry dispatches one record to its field and structural validators.
func checkEntry(doc *types.Document, entry types.RecordEntry) []string {
	switch entry.Type {
	case types.RecordTypeA, types.RecordTypeAAAA:
		return checkAddressList(entry.Type, entry.Value, doc.Proxied)
	case types.RecordTypeMX, types.RecordTypeNS:
		return checkHostnameList(entry.Type, entry.Value)
	case types.RecordTypeCNAME:
		return checkCNAME(entry.Value, doc.Name)
	case types.RecordTypeURL:
		return checkURL(entry.Value)
	case types.RecordTypeTXT:
		return checkTXT(entry.Value)
	case types.RecordTypeCAA, types.RecordTypeSRV:
		return checkObjectList(entry.Type, entry.Value)
	case types.RecordTypeDS:
		return checkDS(entry.Value)
	}
	return nil
}

// baseURLOf returns the document's URL record value, or "" when there is no
// URL record or its value is not a string.
func baseURLOf(doc *types.Document) string {
	raw, ok := doc.Records.Get(types.RecordTypeURL)
	if !ok {
		return ""
	}
	s, _ := asString(raw)
	return s
}
