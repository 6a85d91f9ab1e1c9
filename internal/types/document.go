package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is one registrant's registration: the set of records declared for
// their label in the shared domain, plus the optional redirect configuration.
// A Document is materialized once per validation run, validated, and
// discarded; it is never mutated.
type Document struct {
	Name     string          // identifier: source filename without ".json"
	Records  *RecordSet      // required "record" object
	Proxied  bool            // "proxied" flag
	Redirect *RedirectConfig // optional "redirect_config"
}

// RecordEntry is one record declaration. The value stays raw so that a wrong
// shape surfaces as a policy violation during validation instead of killing
// the parse.
type RecordEntry struct {
	Type  RecordType
	Value json.RawMessage
}

// RecordSet holds a document's records keyed by type, preserving the
// insertion order of the source JSON. It is decoded token-by-token rather
// than through a map so duplicate keys are detected: JSON text permits
// duplicate keys and map decoding would silently keep the last one.
type RecordSet struct {
	entries    []RecordEntry
	index      map[RecordType]int
	duplicates []RecordType
	unknown    []string
}

// UnmarshalJSON decodes the "record" object. The first occurrence of a tag
// wins; repeated tags are remembered as duplicates and keys outside the
// supported set as unknown, both surfaced by the validator.
func (rs *RecordSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode record object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object")
	}

	rs.entries = nil
	rs.index = make(map[RecordType]int)
	rs.duplicates = nil
	rs.unknown = nil

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode record key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record key is not a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode %s record value: %w", key, err)
		}

		rt := RecordType(key)
		if !rt.IsValid() {
			rs.unknown = append(rs.unknown, key)
			continue
		}
		if _, seen := rs.index[rt]; seen {
			rs.duplicates = append(rs.duplicates, rt)
			continue
		}
		rs.index[rt] = len(rs.entries)
		rs.entries = append(rs.entries, RecordEntry{Type: rt, Value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode record object: %w", err)
	}
	return nil
}

// Len returns the number of distinct recognized record types present.
func (rs *RecordSet) Len() int {
	return len(rs.entries)
}

// Has reports whether a record of the given type is present.
func (rs *RecordSet) Has(rt RecordType) bool {
	_, ok := rs.index[rt]
	return ok
}

// Get returns the raw value of the record with the given type.
func (rs *RecordSet) Get(rt RecordType) (json.RawMessage, bool) {
	i, ok := rs.index[rt]
	if !ok {
		return nil, false
	}
	return rs.entries[i].Value, true
}

// Entries returns the recognized records in source order.
func (rs *RecordSet) Entries() []RecordEntry {
	return rs.entries
}

// Tags returns the recognized record types in source order.
func (rs *RecordSet) Tags() []RecordType {
	tags := make([]RecordType, len(rs.entries))
	for i, e := range rs.entries {
		tags[i] = e.Type
	}
	return tags
}

// Duplicates returns the record types that appeared more than once, one
// entry per repeated occurrence.
func (rs *RecordSet) Duplicates() []RecordType {
	return rs.duplicates
}

// Unknown returns the keys that are not recognized record types, in source
// order.
func (rs *RecordSet) Unknown() []string {
	return rs.unknown
}

// PathEntry is one custom-path redirect declaration. The target stays raw so
// a non-string target is a violation rather than a parse failure.
type PathEntry struct {
	Path   string
	Target json.RawMessage
}

// RedirectConfig is the optional secondary path-to-URL redirect mapping.
// Only meaningful alongside a URL record; the combination rules enforce that.
type RedirectConfig struct {
	Paths          []PathEntry
	duplicatePaths []string
}

// UnmarshalJSON decodes a "redirect_config" object, reading the
// "custom_paths" mapping with the same duplicate-detecting token walk used
// for records. Unrecognized keys in the config are ignored.
func (rc *RedirectConfig) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode redirect config: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("redirect_config must be a JSON object")
	}

	rc.Paths = nil
	rc.duplicatePaths = nil

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode redirect config key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("redirect config key is not a string")
		}

		if key != "custom_paths" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return fmt.Errorf("decode redirect config %s: %w", key, err)
			}
			continue
		}

		if err := rc.decodePaths(dec); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode redirect config: %w", err)
	}
	return nil
}

func (rc *RedirectConfig) decodePaths(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode custom_paths: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("custom_paths must be a JSON object")
	}

	seen := make(map[string]bool)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode custom path: %w", err)
		}
		path, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("custom path key is not a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode custom path %q target: %w", path, err)
		}

		if seen[path] {
			rc.duplicatePaths = append(rc.duplicatePaths, path)
			continue
		}
		seen[path] = true
		rc.Paths = append(rc.Paths, PathEntry{Path: path, Target: raw})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode custom_paths: %w", err)
	}
	return nil
}

// DuplicatePaths returns custom paths that appeared more than once, one
// entry per repeated occurrence.
func (rc *RedirectConfig) DuplicatePaths() []string {
	return rc.duplicatePaths
}

// documentJSON is the wire shape of one registration document. Unrecognized
// top-level keys (owner metadata and the like) are ignored.
type documentJSON struct {
	Record   *RecordSet      `json:"record"`
	Proxied  bool            `json:"proxied"`
	Redirect *RedirectConfig `json:"redirect_config"`
}

// ParseDocument decodes one registration document. The name is the document
// identifier (source filename without extension). A malformed body or a
// missing record object is fatal for the document: no rule checks run and
// the error carries the underlying cause.
func ParseDocument(name string, data []byte) (*Document, error) {
	var dj documentJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", name, err)
	}
	if dj.Record == nil {
		return nil, fmt.Errorf("parse document %s: %w", name, ErrMissingRecords)
	}

	return &Document{
		Name:     name,
		Records:  dj.Record,
		Proxied:  dj.Proxied,
		Redirect: dj.Redirect,
	}, nil
}
