package faces

import (
	"math/rand"
	"testing"
)

func TestDescriptorJSONRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	d := randomDescriptor(r)
	if len(d) != DescriptorSize {
		t.Fatalf("fixture length = %d, want %d", len(d), DescriptorSize)
	}
	parsed, err := ParseDescriptor([]byte(d.JSON()))
	if err != nil {
		t.Fatalf("ParseDescriptor: %v", err)
	}
	if len(parsed) != len(d) {
		t.Fatalf("round-trip length = %d, want %d", len(parsed), len(d))
	}
	for i := range d {
		if parsed[i] != d[i] {
			t.Errorf("element %d: %v != %v", i, parsed[i], d[i])
		}
	}
}

func TestLabeledDescriptorsOrder(t *testing.T) {
	labeled := &LabeledDescriptors{}
	labeled.Add("b", descriptorAt(1))
	labeled.Add("a", descriptorAt(1))
	labeled.Add("b", descriptorAt(2)) // existing label, no new entry
	if labeled.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", labeled.Len())
	}
	if labeled.entries[0].label != "b" || labeled.entries[1].label != "a" {
		t.Errorf("labels out of insertion order: %v, %v",
			labeled.entries[0].label, labeled.entries[1].label)
	}
	if len(labeled.entries[0].descriptors) != 2 {
		t.Errorf("label b has %d descriptors, want 2", len(labeled.entries[0].descriptors))
	}
}
