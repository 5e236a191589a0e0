package verify

import (
	"errors"
	"testing"

	"server/faces"
)

// scriptedExtractor plays back a fixed sequence of extraction outcomes, one
// per attempt, and repeats the last one when the script runs out.
type scriptedExtractor struct {
	outcomes []extraction
	calls    int
}

type extraction struct {
	descriptor faces.Descriptor
	err        error
}

func (s *scriptedExtractor) ExtractFile(path string) (faces.Descriptor, error) {
	i := s.calls
	if i >= len(s.outcomes) {
		i = len(s.outcomes) - 1
	}
	s.calls++
	out := s.outcomes[i]
	return out.descriptor, out.err
}

func descriptorAt(value float32) faces.Descriptor {
	d := make(faces.Descriptor, faces.DescriptorSize)
	d[0] = value
	return d
}

var noRetryDelay = RetryPolicy{MaxAttempts: 3}

func TestRunEnroll(t *testing.T) {
	t.Run("face on first attempt", func(t *testing.T) {
		ex := &scriptedExtractor{outcomes: []extraction{{descriptor: descriptorAt(0.1)}}}
		result := Run(ex, SingleFrame("frame.jpg"), Enroll(), 0.6, noRetryDelay)
		if result.State != StateSuccess {
			t.Fatalf("State = %v, want success", result.State)
		}
		if result.Attempts != 1 {
			t.Errorf("Attempts = %d, want 1", result.Attempts)
		}
		if result.Descriptor == nil {
			t.Error("Descriptor not set on enrollment success")
		}
	})

	t.Run("face on second attempt", func(t *testing.T) {
		ex := &scriptedExtractor{outcomes: []extraction{
			{}, // no face
			{descriptor: descriptorAt(0.1)},
		}}
		result := Run(ex, SingleFrame("frame.jpg"), Enroll(), 0.6, noRetryDelay)
		if result.State != StateSuccess {
			t.Fatalf("State = %v, want success", result.State)
		}
		if result.Attempts != 2 {
			t.Errorf("Attempts = %d, want 2", result.Attempts)
		}
	})

	t.Run("no face ever", func(t *testing.T) {
		ex := &scriptedExtractor{outcomes: []extraction{{}}}
		result := Run(ex, SingleFrame("frame.jpg"), Enroll(), 0.6, noRetryDelay)
		if result.State != StateNoFace {
			t.Fatalf("State = %v, want no-face", result.State)
		}
		if result.Attempts != noRetryDelay.MaxAttempts {
			t.Errorf("Attempts = %d, want %d", result.Attempts, noRetryDelay.MaxAttempts)
		}
		if ex.calls != noRetryDelay.MaxAttempts {
			t.Errorf("extractor called %d times, want %d", ex.calls, noRetryDelay.MaxAttempts)
		}
	})
}

func TestRunAgainstOne(t *testing.T) {
	stored := descriptorAt(0)

	t.Run("match within threshold", func(t *testing.T) {
		ex := &scriptedExtractor{outcomes: []extraction{{descriptor: descriptorAt(0.3)}}}
		result := Run(ex, SingleFrame("frame.jpg"), AgainstOne(stored), 0.6, noRetryDelay)
		if result.State != StateSuccess {
			t.Fatalf("State = %v, want success", result.State)
		}
		if result.Distance <= 0 || result.Distance >= 0.6 {
			t.Errorf("Distance = %v, want in (0, 0.6)", result.Distance)
		}
	})

	t.Run("too far on every attempt", func(t *testing.T) {
		ex := &scriptedExtractor{outcomes: []extraction{{descriptor: descriptorAt(0.9)}}}
		result := Run(ex, SingleFrame("frame.jpg"), AgainstOne(stored), 0.6, noRetryDelay)
		if result.State != StateNoMatch {
			t.Fatalf("State = %v, want no-match", result.State)
		}
		if result.Attempts != noRetryDelay.MaxAttempts {
			t.Errorf("Attempts = %d, want %d", result.Attempts, noRetryDelay.MaxAttempts)
		}
	})

	t.Run("no face then match", func(t *testing.T) {
		ex := &scriptedExtractor{outcomes: []extraction{
			{},
			{descriptor: descriptorAt(0.2)},
		}}
		result := Run(ex, SingleFrame("frame.jpg"), AgainstOne(stored), 0.6, noRetryDelay)
		if result.State != StateSuccess {
			t.Fatalf("State = %v, want success", result.State)
		}
		if result.Attempts != 2 {
			t.Errorf("Attempts = %d, want 2", result.Attempts)
		}
	})
}

func TestRunAgainstMany(t *testing.T) {
	labeled := &faces.LabeledDescriptors{}
	labeled.Add("guard-1", descriptorAt(0))
	labeled.Add("guard-2", descriptorAt(2))

	t.Run("identifies the closest label", func(t *testing.T) {
		ex := &scriptedExtractor{outcomes: []extraction{{descriptor: descriptorAt(0.3)}}}
		result := Run(ex, SingleFrame("frame.jpg"), AgainstMany(labeled), 0.6, noRetryDelay)
		if result.State != StateSuccess {
			t.Fatalf("State = %v, want success", result.State)
		}
		if result.Match == nil || result.Match.Label != "guard-1" {
			t.Fatalf("Match = %+v, want guard-1", result.Match)
		}
	})

	t.Run("nobody close enough", func(t *testing.T) {
		ex := &scriptedExtractor{outcomes: []extraction{{descriptor: descriptorAt(1)}}}
		result := Run(ex, SingleFrame("frame.jpg"), AgainstMany(labeled), 0.6, noRetryDelay)
		if result.State != StateNoMatch {
			t.Fatalf("State = %v, want no-match", result.State)
		}
		if result.Match != nil {
			t.Errorf("Match = %+v, want nil", result.Match)
		}
	})
}

func TestRunFatal(t *testing.T) {
	boom := errors.New("model not loaded")
	ex := &scriptedExtractor{outcomes: []extraction{{err: boom}}}
	result := Run(ex, SingleFrame("frame.jpg"), Enroll(), 0.6, noRetryDelay)
	if result.State != StateFatal {
		t.Fatalf("State = %v, want fatal-error", result.State)
	}
	if !errors.Is(result.Err, boom) {
		t.Errorf("Err = %v, want %v", result.Err, boom)
	}
	if ex.calls != 1 {
		t.Errorf("extractor called %d times after fatal error, want 1", ex.calls)
	}
}

func TestRunMinimumOneAttempt(t *testing.T) {
	ex := &scriptedExtractor{outcomes: []extraction{{descriptor: descriptorAt(0.1)}}}
	result := Run(ex, SingleFrame("frame.jpg"), Enroll(), 0.6, RetryPolicy{MaxAttempts: 0})
	if result.State != StateSuccess {
		t.Fatalf("State = %v, want success", result.State)
	}
	if result.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", result.Attempts)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateSuccess, "success"},
		{StateNoFace, "no-face"},
		{StateNoMatch, "no-match"},
		{StateFatal, "fatal-error"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
