package faces

import "encoding/json"

// DescriptorSize is the dimensionality of the dlib ResNet face descriptor.
const DescriptorSize = 128

// Descriptor is a face embedding. All descriptors that get compared with each
// other must have the same length; mixing lengths is a caller bug.
type Descriptor []float32

// Match is the winning identity of a BestMatch call.
type Match struct {
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
}

// Confidence is the value shown to users (1 - distance, clamped to [0,1]).
// It is not a probability.
func (m *Match) Confidence() float64 {
	c := 1 - m.Distance
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// JSON returns the textual representation of the descriptor (a JSON array of
// floats). ParseDescriptor round-trips it exactly, element-wise.
func (d Descriptor) JSON() string {
	data, _ := json.Marshal(d)
	return string(data)
}

func ParseDescriptor(data []byte) (d Descriptor, err error) {
	err = json.Unmarshal(data, &d)
	return
}

type labelEntry struct {
	label       string
	descriptors []Descriptor
}

// LabeledDescriptors maps identity labels to their enrolled descriptors.
// Labels keep insertion order, which makes BestMatch tie-breaks deterministic.
// Built fresh per verification attempt; the zero value is ready to use.
type LabeledDescriptors struct {
	entries []labelEntry
	index   map[string]int
}

func (s *LabeledDescriptors) Add(label string, d Descriptor) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	i, ok := s.index[label]
	if !ok {
		i = len(s.entries)
		s.index[label] = i
		s.entries = append(s.entries, labelEntry{label: label})
	}
	s.entries[i].descriptors = append(s.entries[i].descriptors, d)
}

// Len returns the number of distinct labels.
func (s *LabeledDescriptors) Len() int {
	return len(s.entries)
}
