// Package characters holds the remote Character record and the static query
// documents used to fetch the characters collection.
package characters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Character is a read-only snapshot of a server-defined record.
type Character struct {
	ID     ID     `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Image  string `json:"image" yaml:"image"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// ID accepts either a JSON string or a JSON number and keeps its text form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("character id: expected string or number, got %s", b)
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }
