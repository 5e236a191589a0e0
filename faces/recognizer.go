package faces

import (
	"errors"
	"fmt"

	"github.com/Kagami/go-face"
)

// ErrNotInitialized is returned when extraction is attempted on a closed or
// never-initialized recognizer. This is an environment failure - reload the
// models - not a "no face" outcome.
var ErrNotInitialized = errors.New("face recognizer not initialized")

// Recognizer is an owned handle over the dlib detection and descriptor models.
// Load it once at startup and share it; extraction itself has no mutable state
// and is safe for concurrent use.
type Recognizer struct {
	rec    *face.Recognizer
	useCNN bool
}

func NewRecognizer(modelsDir string, useCNN bool) (*Recognizer, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("loading face models from %s: %w", modelsDir, err)
	}
	return &Recognizer{rec: rec, useCNN: useCNN}, nil
}

func (r *Recognizer) Close() {
	if r.rec != nil {
		r.rec.Close()
		r.rec = nil
	}
}

// ExtractFile returns the descriptor of the most prominent face in the image,
// or nil (with no error) when no face is detected - a frequent, expected
// outcome on live camera frames. When several faces are present the one with
// the largest bounding box wins; exact area ties go to the first detection.
func (r *Recognizer) ExtractFile(path string) (Descriptor, error) {
	if r.rec == nil {
		return nil, ErrNotInitialized
	}
	var (
		found []face.Face
		err   error
	)
	if r.useCNN {
		found, err = r.rec.RecognizeFileCNN(path)
	} else {
		found, err = r.rec.RecognizeFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("recognizing %s: %w", path, err)
	}
	return pickProminent(found), nil
}

// Extract is ExtractFile for an in-memory image (JPEG bytes).
func (r *Recognizer) Extract(imgData []byte) (Descriptor, error) {
	if r.rec == nil {
		return nil, ErrNotInitialized
	}
	var (
		found []face.Face
		err   error
	)
	if r.useCNN {
		found, err = r.rec.RecognizeCNN(imgData)
	} else {
		found, err = r.rec.Recognize(imgData)
	}
	if err != nil {
		return nil, fmt.Errorf("recognizing image: %w", err)
	}
	return pickProminent(found), nil
}

func pickProminent(found []face.Face) Descriptor {
	if len(found) == 0 {
		return nil
	}
	best := 0
	bestArea := found[0].Rectangle.Dx() * found[0].Rectangle.Dy()
	for i := 1; i < len(found); i++ {
		area := found[i].Rectangle.Dx() * found[i].Rectangle.Dy()
		if area > bestArea {
			best = i
			bestArea = area
		}
	}
	desc := [DescriptorSize]float32(found[best].Descriptor)
	return Descriptor(desc[:])
}
