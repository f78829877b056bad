package render

import (
	"fmt"
	"testing"

	"charview/internal/characters"

	"github.com/google/go-cmp/cmp"
)

func TestProject_PreservesOrderAndCount(t *testing.T) {
	for _, n := range []int{0, 1, 7, 50} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			in := make([]characters.Character, n)
			for i := range in {
				// Deliberately unsorted names and a duplicate to prove nothing is reordered or deduplicated.
				in[i] = characters.Character{
					ID:    characters.ID(fmt.Sprint(n - i)),
					Name:  fmt.Sprintf("c-%d", (i*7)%5),
					Image: fmt.Sprintf("http://x/%d.png", i),
				}
			}

			got := Project(in, characters.FieldsBasic)
			if len(got) != n {
				t.Fatalf("expected %d records, got %d", n, len(got))
			}
			for i := range in {
				if got[i].Key != in[i].ID.String() || got[i].Name != in[i].Name || got[i].Image != in[i].Image {
					t.Fatalf("record %d mismatch: %+v vs %+v", i, got[i], in[i])
				}
			}
		})
	}
}

func TestProject_StatusOnlyWithStatusFields(t *testing.T) {
	in := []characters.Character{{ID: "2", Name: "Morty", Image: "http://x/2.png", Status: "Alive"}}

	basic := Project(in, characters.FieldsBasic)
	want := []DisplayRecord{{Key: "2", Name: "Morty", Image: "http://x/2.png"}}
	if diff := cmp.Diff(want, basic); diff != "" {
		t.Fatalf("basic projection mismatch (-want +got):\n%s", diff)
	}

	withStatus := Project(in, characters.FieldsWithStatus)
	want = []DisplayRecord{{Key: "2", Name: "Morty", Image: "http://x/2.png", Status: "Alive", HasStatus: true}}
	if diff := cmp.Diff(want, withStatus); diff != "" {
		t.Fatalf("status projection mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayRecord_LabelAndAlt(t *testing.T) {
	a := DisplayRecord{Name: "Rick", Image: "http://x/1.png"}
	if a.Label() != "Rick" || a.Alt() != "Rick" {
		t.Fatalf("basic record: label=%q alt=%q", a.Label(), a.Alt())
	}

	b := DisplayRecord{Name: "Morty", Status: "Alive", HasStatus: true}
	if b.Label() != "Morty ------- Alive" {
		t.Fatalf("status label: %q", b.Label())
	}
	if b.Alt() != "" {
		t.Fatalf("status record must have no alt text, got %q", b.Alt())
	}
}

func TestProject_EmptyInputIsEmptyNotNil(t *testing.T) {
	got := Project(nil, characters.FieldsWithStatus)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
