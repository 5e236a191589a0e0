// Package verify drives one face verification or enrollment attempt: pull a
// frame, extract a descriptor, match it, retry on the expected empty outcomes.
// Camera acquisition stays with the caller; retries are bounded by an explicit
// policy instead of timer loops inside the matcher.
package verify

import (
	"time"

	"server/config"
	"server/faces"
)

type State uint8

const (
	StateIdle State = iota
	StateCapturing
	StateExtracting
	StateMatching
	StateSuccess
	StateNoFace  // retries exhausted, never got a usable face
	StateNoMatch // got faces, nobody was close enough
	StateFatal   // extractor/model failure, not retried
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateExtracting:
		return "extracting"
	case StateMatching:
		return "matching"
	case StateSuccess:
		return "success"
	case StateNoFace:
		return "no-face"
	case StateNoMatch:
		return "no-match"
	}
	return "fatal-error"
}

// Extractor turns a frame into a descriptor, nil when no face is present.
// *faces.Recognizer satisfies it.
type Extractor interface {
	ExtractFile(path string) (faces.Descriptor, error)
}

// FrameSource hands out frame file paths, one per attempt.
type FrameSource interface {
	NextFrame() (string, error)
}

type singleFrame string

func (s singleFrame) NextFrame() (string, error) { return string(s), nil }

// SingleFrame is the FrameSource for the common case of one uploaded photo.
// Every attempt re-reads the same frame, so retrying a no-face outcome on it
// is pointless; pair it with a MaxAttempts of 1 or accept the wasted work.
func SingleFrame(path string) FrameSource { return singleFrame(path) }

type modeKind uint8

const (
	modeEnroll modeKind = iota
	modeAgainstOne
	modeAgainstMany
)

// Mode says what to do with an extracted descriptor. Each variant carries
// exactly the data its branch needs.
type Mode struct {
	kind    modeKind
	stored  faces.Descriptor
	labeled *faces.LabeledDescriptors
}

// Enroll captures a descriptor and returns it for the caller to persist.
func Enroll() Mode { return Mode{kind: modeEnroll} }

// AgainstOne verifies the probe against a single stored descriptor.
func AgainstOne(stored faces.Descriptor) Mode {
	return Mode{kind: modeAgainstOne, stored: stored}
}

// AgainstMany identifies the probe among all enrolled identities.
func AgainstMany(labeled *faces.LabeledDescriptors) Mode {
	return Mode{kind: modeAgainstMany, labeled: labeled}
}

// RetryPolicy bounds the no-face and no-match retries of one session.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: config.VERIFY_MAX_ATTEMPTS,
		Delay:       time.Duration(config.VERIFY_RETRY_DELAY_MS) * time.Millisecond,
	}
}

type Result struct {
	State      State
	Attempts   int
	Descriptor faces.Descriptor // set on enrollment success
	Match      *faces.Match     // set on AgainstMany success
	Distance   float64          // set on AgainstOne success
	Err        error            // set when State == StateFatal
}

// Run executes the session to completion. Extraction strictly precedes
// matching within each attempt; frames are never pipelined.
func Run(ex Extractor, frames FrameSource, mode Mode, threshold float64, policy RetryPolicy) Result {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	result := Result{State: StateNoFace}
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		result.Attempts = attempt
		frame, err := frames.NextFrame()
		if err != nil {
			return Result{State: StateFatal, Attempts: attempt, Err: err}
		}
		descriptor, err := ex.ExtractFile(frame)
		if err != nil {
			return Result{State: StateFatal, Attempts: attempt, Err: err}
		}
		if descriptor == nil {
			result.State = StateNoFace
		} else {
			outcome := matchOne(descriptor, mode, threshold)
			outcome.Attempts = attempt
			if outcome.State != StateNoMatch {
				return outcome
			}
			result.State = StateNoMatch
		}
		if attempt < policy.MaxAttempts && policy.Delay > 0 {
			time.Sleep(policy.Delay)
		}
	}
	return result
}

func matchOne(descriptor faces.Descriptor, mode Mode, threshold float64) Result {
	switch mode.kind {
	case modeEnroll:
		return Result{State: StateSuccess, Descriptor: descriptor}
	case modeAgainstOne:
		ok, err := faces.Matches(descriptor, mode.stored, threshold)
		if err != nil {
			return Result{State: StateFatal, Err: err}
		}
		if !ok {
			return Result{State: StateNoMatch}
		}
		dist, _ := faces.Distance(descriptor, mode.stored)
		return Result{State: StateSuccess, Descriptor: descriptor, Distance: dist}
	default:
		match, err := faces.BestMatch(descriptor, mode.labeled, threshold)
		if err != nil {
			return Result{State: StateFatal, Err: err}
		}
		if match == nil {
			return Result{State: StateNoMatch}
		}
		return Result{State: StateSuccess, Descriptor: descriptor, Match: match, Distance: match.Distance}
	}
}
