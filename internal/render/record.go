// Package render projects fetched characters into display records and writes
// view frames to output sinks (HTML fragment, terminal text, JSON, YAML).
package render

import "charview/internal/characters"

// StatusSeparator joins name and status in the status variant.
const StatusSeparator = " ------- "

// DisplayRecord is the per-character unit handed to sinks. Key is the source
// character id and is only used as a stable list key.
type DisplayRecord struct {
	Key       string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Image     string `json:"image" yaml:"image"`
	Status    string `json:"status,omitempty" yaml:"status,omitempty"`
	HasStatus bool   `json:"-" yaml:"-"`
}

// Label is the item's visible text.
func (d DisplayRecord) Label() string {
	if d.HasStatus {
		return d.Name + StatusSeparator + d.Status
	}
	return d.Name
}

// Alt is the image alternative text; the status variant renders none.
func (d DisplayRecord) Alt() string {
	if d.HasStatus {
		return ""
	}
	return d.Name
}

// Project maps characters one-to-one, in order, without filtering, sorting
// or deduplication.
func Project(chars []characters.Character, fields characters.FieldSet) []DisplayRecord {
	out := make([]DisplayRecord, 0, len(chars))
	for _, c := range chars {
		rec := DisplayRecord{
			Key:   c.ID.String(),
			Name:  c.Name,
			Image: c.Image,
		}
		if fields.HasStatus() {
			rec.Status = c.Status
			rec.HasStatus = true
		}
		out = append(out, rec)
	}
	return out
}
