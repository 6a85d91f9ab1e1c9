// Package types defines the registration document model, the record-type
// enum, and sentinel errors used throughout the zonewarden module.
package types

import "errors"

// RecordType represents a record type a registrant may declare.
type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeCAA   RecordType = "CAA"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeDS    RecordType = "DS"
	RecordTypeMX    RecordType = "MX"
	RecordTypeNS    RecordType = "NS"
	RecordTypeSRV   RecordType = "SRV"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeURL   RecordType = "URL"
)

// validRecordTypes is the set of all record types the service accepts.
var validRecordTypes = map[RecordType]bool{
	RecordTypeA:     true,
	RecordTypeAAAA:  true,
	RecordTypeCAA:   true,
	RecordTypeCNAME: true,
	RecordTypeDS:    true,
	RecordTypeMX:    true,
	RecordTypeNS:    true,
	RecordTypeSRV:   true,
	RecordTypeTXT:   true,
	RecordTypeURL:   true,
}

// IsValid reports whether the RecordType is one the service accepts.
func (rt RecordType) IsValid() bool {
	return validRecordTypes[rt]
}

// String returns the string form of the record type.
func (rt RecordType) String() string {
	return string(rt)
}

// Violation is one policy violation found in a document. Document is the
// document identifier (source filename without extension) and Message is a
// human-readable description of the problem.
type Violation struct {
	Document string `json:"document"`
	Message  string `json:"message"`
}

// DSRecord is the decoded form of one DS record object. Only KeyTag and
// Digest are constrained by policy; Algorithm and DigestType ride along for
// zone export.
type DSRecord struct {
	KeyTag     int    `json:"keyTag"`
	Algorithm  int    `json:"algorithm"`
	DigestType int    `json:"digestType"`
	Digest     string `json:"digest"`
}

// Sentinel errors for document handling.
var (
	ErrMissingRecords   = errors.New("document has no record object")
	ErrDocumentNotFound = errors.New("document not found")
)
