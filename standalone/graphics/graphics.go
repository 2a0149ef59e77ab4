// Package graphics exposes the driver-level 3D settings the Display and
// Graphics pages edit: Radeon Super Resolution (with sharpness), AMD
// Fluid Motion Frames and Anti-Lag.
package graphics

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnsupported is returned when the hardware lacks a feature
	ErrUnsupported = errors.New("feature not supported")
	// ErrOutOfRange is returned for values outside the legal range
	ErrOutOfRange = errors.New("value out of range")
)

// Sharpness bounds for RSR
const (
	SharpnessMin = 0
	SharpnessMax = 100
)

// Feature identifies one graphics setting
type Feature string

const (
	FeatureRSR     Feature = "rsr"
	FeatureAFMF    Feature = "afmf"
	FeatureAntiLag Feature = "anti_lag"
)

// Service reads and writes graphics settings
type Service interface {
	Supported(f Feature) bool
	Enabled(f Feature) (bool, error)
	SetEnabled(f Feature, on bool) error
	Sharpness() (int, error)
	SetSharpness(v int) error
}

// Settings is a snapshot of every value
type Settings struct {
	RSR       bool `json:"rsr"`
	Sharpness int  `json:"sharpness"`
	AFMF      bool `json:"afmf"`
	AntiLag   bool `json:"antiLag"`
}

// DefaultSettings returns the driver defaults
func DefaultSettings() Settings {
	return Settings{Sharpness: 75}
}

// Simulated is an in-process Service. It is safe for concurrent use.
type Simulated struct {
	mu        sync.Mutex
	supported map[Feature]bool
	state     Settings
}

// NewSimulated creates a service with the given features available.
// No arguments means every feature is available.
func NewSimulated(initial Settings, features ...Feature) *Simulated {
	if len(features) == 0 {
		features = []Feature{FeatureRSR, FeatureAFMF, FeatureAntiLag}
	}
	s := &Simulated{supported: make(map[Feature]bool), state: initial}
	for _, f := range features {
		s.supported[f] = true
	}
	return s
}

// Supported reports whether f is available
func (s *Simulated) Supported(f Feature) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.supported[f]
}

// Enabled returns the state of f
func (s *Simulated) Enabled(f Feature) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.flag(f)
	if err != nil {
		return false, err
	}
	return *p, nil
}

// SetEnabled changes the state of f
func (s *Simulated) SetEnabled(f Feature, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.flag(f)
	if err != nil {
		return err
	}
	*p = on
	return nil
}

// Sharpness returns the RSR sharpness
func (s *Simulated) Sharpness() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.supported[FeatureRSR] {
		return 0, fmt.Errorf("sharpness: %w", ErrUnsupported)
	}
	return s.state.Sharpness, nil
}

// SetSharpness changes the RSR sharpness
func (s *Simulated) SetSharpness(v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.supported[FeatureRSR] {
		return fmt.Errorf("sharpness: %w", ErrUnsupported)
	}
	if v < SharpnessMin || v > SharpnessMax {
		return fmt.Errorf("sharpness %d: %w", v, ErrOutOfRange)
	}
	s.state.Sharpness = v
	return nil
}

// Snapshot returns the current values
func (s *Simulated) Snapshot() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Simulated) flag(f Feature) (*bool, error) {
	var p *bool
	switch f {
	case FeatureRSR:
		p = &s.state.RSR
	case FeatureAFMF:
		p = &s.state.AFMF
	case FeatureAntiLag:
		p = &s.state.AntiLag
	default:
		return nil, fmt.Errorf("unknown feature %q", f)
	}
	if !s.supported[f] {
		return nil, fmt.Errorf("%s: %w", f, ErrUnsupported)
	}
	return p, nil
}

// Reset writes the defaults through svc, skipping unsupported features.
// All failures are returned together.
func Reset(svc Service) error {
	d := DefaultSettings()
	var errs []error
	for _, f := range []Feature{FeatureRSR, FeatureAFMF, FeatureAntiLag} {
		if !svc.Supported(f) {
			continue
		}
		if err := svc.SetEnabled(f, false); err != nil {
			errs = append(errs, err)
		}
	}
	if svc.Supported(FeatureRSR) {
		if err := svc.SetSharpness(d.Sharpness); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
