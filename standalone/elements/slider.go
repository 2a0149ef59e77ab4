package elements

import (
	"fmt"

	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/types"
)

// Slider adjusts an integer setting. Activate enters value-adjust mode,
// in which Left and Right change the value by one step. Every adjustment
// writes the clamped value, even when it did not change.
type Slider struct {
	Base
	min, max, step int
	value          int
	unit           string
	adjusting      bool
	onApply        func(int) error
}

// NewSlider creates a slider over [min, max]. The initial value is
// clamped without being written.
func NewSlider(label string, min, max, step, initial int, apply func(int) error) *Slider {
	if step < 1 {
		step = 1
	}
	if max < min {
		max = min
	}
	s := &Slider{
		Base:    Base{label: label},
		min:     min,
		max:     max,
		step:    step,
		onApply: apply,
	}
	s.value = s.clamp(initial)
	return s
}

// WithUnit sets the suffix shown after the value
func (s *Slider) WithUnit(unit string) *Slider {
	s.unit = unit
	return s
}

// Range returns the bounds and step
func (s *Slider) Range() (min, max, step int) {
	return s.min, s.max, s.step
}

// Current returns the value
func (s *Slider) Current() int {
	return s.value
}

// Adjusting reports whether value-adjust mode is active
func (s *Slider) Adjusting() bool {
	return s.adjusting
}

// Mode implements nav.Moder
func (s *Slider) Mode() nav.SubMode {
	if s.adjusting {
		return nav.SubMode{Kind: nav.ModeValueAdjust}
	}
	return nav.SubMode{}
}

// Sync changes the value without writing it, for syncing from the model
func (s *Slider) Sync(v int) {
	s.value = s.clamp(v)
	s.changed()
}

// SetFromPointer writes a pointer-chosen value
func (s *Slider) SetFromPointer(v int) {
	s.write(v)
}

func (s *Slider) Activate() {
	s.adjusting = !s.adjusting
	s.changed()
}

func (s *Slider) CanMove(dir types.Direction) bool {
	return s.adjusting && (dir == types.DirLeft || dir == types.DirRight)
}

func (s *Slider) HandleMove(dir types.Direction) {
	switch dir {
	case types.DirLeft:
		s.write(s.value - s.step)
	case types.DirRight:
		s.write(s.value + s.step)
	}
}

// Cancel leaves value-adjust mode, keeping the value
func (s *Slider) Cancel() bool {
	if !s.adjusting {
		return false
	}
	s.adjusting = false
	s.changed()
	return true
}

func (s *Slider) OnFocusLost() {
	s.Base.OnFocusLost()
	if s.adjusting {
		s.adjusting = false
		s.changed()
	}
}

// Value returns the formatted value
func (s *Slider) Value() string {
	return fmt.Sprintf("%d%s", s.value, s.unit)
}

// write clamps v and always applies it
func (s *Slider) write(v int) {
	s.value = s.clamp(v)
	s.changed()
	if s.onApply != nil {
		v := s.value
		s.apply(func() error { return s.onApply(v) })
	}
}

func (s *Slider) clamp(v int) int {
	return max(s.min, min(v, s.max))
}
