package faces

import (
	"math"
	"math/rand"
	"testing"
)

func randomDescriptor(r *rand.Rand) Descriptor {
	d := make(Descriptor, DescriptorSize)
	for i := range d {
		d[i] = r.Float32()*2 - 1
	}
	return d
}

// descriptorAt returns a zero vector with one element set, so its distance to
// the zero vector is exactly that value.
func descriptorAt(value float32) Descriptor {
	d := make(Descriptor, DescriptorSize)
	d[0] = value
	return d
}

func TestDistance_Identity(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		a := randomDescriptor(r)
		dist, err := Distance(a, a)
		if err != nil {
			t.Fatalf("Distance(a, a) error: %v", err)
		}
		if dist != 0 {
			t.Errorf("Distance(a, a) = %v, want 0", dist)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 10; i++ {
		a := randomDescriptor(r)
		b := randomDescriptor(r)
		ab, err := Distance(a, b)
		if err != nil {
			t.Fatal(err)
		}
		ba, err := Distance(b, a)
		if err != nil {
			t.Fatal(err)
		}
		if ab != ba {
			t.Errorf("Distance(a, b) = %v, Distance(b, a) = %v", ab, ba)
		}
		if ab < 0 {
			t.Errorf("Distance(a, b) = %v, want non-negative", ab)
		}
	}
}

func TestDistance_TriangleInequality(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		a := randomDescriptor(r)
		b := randomDescriptor(r)
		c := randomDescriptor(r)
		ab, _ := Distance(a, b)
		ac, _ := Distance(a, c)
		cb, _ := Distance(c, b)
		if ab > ac+cb+1e-9 {
			t.Errorf("triangle inequality violated: %v > %v + %v", ab, ac, cb)
		}
	}
}

func TestDistance_LengthMismatch(t *testing.T) {
	a := make(Descriptor, DescriptorSize)
	b := make(Descriptor, DescriptorSize-1)
	if _, err := Distance(a, b); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
	if _, err := Matches(a, b, 0.6); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestMatches_ThresholdBoundary(t *testing.T) {
	a := descriptorAt(0)
	b := descriptorAt(0.5)
	dist, err := Distance(a, b)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name      string
		threshold float64
		want      bool
	}{
		{"exactly at distance", dist, false},
		{"just above distance", dist + 1e-9, true},
		{"well below", dist / 2, false},
		{"well above", dist * 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Matches(a, b, tt.threshold)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Matches(a, b, %v) = %v, want %v", tt.threshold, got, tt.want)
			}
		})
	}
}

func TestBestMatch(t *testing.T) {
	probe := descriptorAt(0)
	near := descriptorAt(0.3)
	far := descriptorAt(0.9)

	t.Run("single label below threshold", func(t *testing.T) {
		labeled := &LabeledDescriptors{}
		labeled.Add("guard-1", near)
		labeled.Add("guard-2", far)
		match, err := BestMatch(probe, labeled, 0.6)
		if err != nil {
			t.Fatal(err)
		}
		if match == nil {
			t.Fatal("expected a match")
		}
		if match.Label != "guard-1" {
			t.Errorf("Label = %q, want guard-1", match.Label)
		}
		if math.Abs(match.Distance-0.3) > 1e-6 {
			t.Errorf("Distance = %v, want 0.3", match.Distance)
		}
	})

	t.Run("all labels at or above threshold", func(t *testing.T) {
		labeled := &LabeledDescriptors{}
		labeled.Add("guard-1", far)
		labeled.Add("guard-2", descriptorAt(1.5))
		match, err := BestMatch(probe, labeled, 0.6)
		if err != nil {
			t.Fatal(err)
		}
		if match != nil {
			t.Fatalf("expected no match, got %+v", match)
		}
	})

	t.Run("empty set", func(t *testing.T) {
		match, err := BestMatch(probe, &LabeledDescriptors{}, 0.6)
		if err != nil {
			t.Fatal(err)
		}
		if match != nil {
			t.Fatalf("expected no match on empty set, got %+v", match)
		}
	})

	t.Run("exact tie goes to first-added label", func(t *testing.T) {
		labeled := &LabeledDescriptors{}
		labeled.Add("second-best", descriptorAt(0.2))
		labeled.Add("same-distance", descriptorAt(0.2))
		match, err := BestMatch(probe, labeled, 0.6)
		if err != nil {
			t.Fatal(err)
		}
		if match == nil || match.Label != "second-best" {
			t.Fatalf("tie-break: got %+v, want second-best", match)
		}
	})

	t.Run("minimum per label wins", func(t *testing.T) {
		labeled := &LabeledDescriptors{}
		labeled.Add("guard-1", far)
		labeled.Add("guard-1", near) // second enrollment, much closer
		labeled.Add("guard-2", descriptorAt(0.4))
		match, err := BestMatch(probe, labeled, 0.6)
		if err != nil {
			t.Fatal(err)
		}
		if match == nil || match.Label != "guard-1" {
			t.Fatalf("got %+v, want guard-1 via its closer descriptor", match)
		}
	})

	t.Run("length mismatch inside the set", func(t *testing.T) {
		labeled := &LabeledDescriptors{}
		labeled.Add("broken", make(Descriptor, DescriptorSize-1))
		if _, err := BestMatch(probe, labeled, 0.6); err == nil {
			t.Fatal("expected error for mismatched descriptor in set")
		}
	})
}

// The enrollment/verification scenario end to end: enroll, then match a
// slightly perturbed probe and reject an unrelated one.
func TestEnrollVerifyScenario(t *testing.T) {
	enrolled := descriptorAt(0) // "guard-1" at enrollment time
	labeled := &LabeledDescriptors{}
	labeled.Add("guard-1", enrolled)

	probeSame := descriptorAt(0.3)  // same person, small perturbation
	probeOther := descriptorAt(0.9) // somebody else

	match, err := BestMatch(probeSame, labeled, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	if match == nil || match.Label != "guard-1" {
		t.Fatalf("perturbed probe: got %+v, want guard-1", match)
	}

	match, err = BestMatch(probeOther, labeled, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	if match != nil {
		t.Fatalf("unrelated probe: got %+v, want none", match)
	}
}

func TestMatchConfidence(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"close", 0.3, 0.7},
		{"zero distance", 0, 1},
		{"beyond one", 1.4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Match{Label: "x", Distance: tt.distance}
			if got := m.Confidence(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Confidence() = %v, want %v", got, tt.want)
			}
		})
	}
}
