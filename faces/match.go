package faces

import (
	"errors"
	"fmt"
	"math"
)

// ErrDescriptorLength indicates two descriptors of different lengths were
// compared. This is a programming error on the caller's side, never a normal
// runtime outcome.
var ErrDescriptorLength = errors.New("descriptor length mismatch")

// Distance returns the Euclidean (L2) distance between two descriptors.
// Lower means more similar.
func Distance(a, b Descriptor) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDescriptorLength, len(a), len(b))
	}
	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Matches reports whether two descriptors are close enough to be the same
// person. The threshold is model-dependent and comes from configuration
// (config.FACE_MATCH_THRESHOLD); 0.6 is the dlib ResNet calibration.
func Matches(a, b Descriptor, threshold float64) (bool, error) {
	dist, err := Distance(a, b)
	if err != nil {
		return false, err
	}
	return dist < threshold, nil
}

// BestMatch finds the label whose closest enrolled descriptor is nearest to
// the probe. Returns nil when no label gets below the threshold (the "unknown
// person" outcome - distinct from a detection failure) or when the set is
// empty. On an exact distance tie the first-added label wins.
func BestMatch(probe Descriptor, labeled *LabeledDescriptors, threshold float64) (*Match, error) {
	best := (*Match)(nil)
	for _, entry := range labeled.entries {
		for _, d := range entry.descriptors {
			dist, err := Distance(probe, d)
			if err != nil {
				return nil, fmt.Errorf("label %q: %w", entry.label, err)
			}
			if best == nil || dist < best.Distance {
				best = &Match{Label: entry.label, Distance: dist}
			}
		}
	}
	if best == nil || best.Distance >= threshold {
		return nil, nil
	}
	return best, nil
}
