package characters

import (
	"fmt"
	"strings"
)

// FieldSet selects which Character fields are requested and rendered.
type FieldSet int

const (
	// FieldsBasic requests id, name and image.
	FieldsBasic FieldSet = iota
	// FieldsWithStatus additionally requests status.
	FieldsWithStatus
)

const OperationName = "GetCharacter"

func (f FieldSet) String() string {
	switch f {
	case FieldsBasic:
		return "basic"
	case FieldsWithStatus:
		return "status"
	default:
		return fmt.Sprintf("FieldSet(%d)", int(f))
	}
}

func (f FieldSet) HasStatus() bool { return f == FieldsWithStatus }

// Fields lists the selection on each result item, in query order.
func (f FieldSet) Fields() []string {
	fields := []string{"id", "name", "image"}
	if f.HasStatus() {
		fields = append(fields, "status")
	}
	return fields
}

// Query returns the static query document for the field set. It has no
// variables.
func Query(f FieldSet) string {
	var b strings.Builder
	b.WriteString("query ")
	b.WriteString(OperationName)
	b.WriteString(" {\n  characters {\n    results {\n")
	for _, field := range f.Fields() {
		b.WriteString("      ")
		b.WriteString(field)
		b.WriteString("\n")
	}
	b.WriteString("    }\n  }\n}\n")
	return b.String()
}

// Envelope is the "data" member of a successful response.
type Envelope struct {
	Characters *Page `json:"characters"`
}

type Page struct {
	Results []Character `json:"results"`
}
