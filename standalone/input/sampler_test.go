package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user-none/padnav/standalone/types"
)

// scriptedDevice returns whatever state the test sets
type scriptedDevice struct {
	state State
	err   error
	polls int
}

func (d *scriptedDevice) Poll() (State, error) {
	d.polls++
	return d.state, d.err
}

func pressed(b Button) State {
	return State{Connected: true, Buttons: b}
}

func newTestSampler(dev Device) *Sampler {
	return NewSampler(dev, Options{
		InitialDelay: 180 * time.Millisecond,
		RepeatRate:   50 * time.Millisecond,
		DeadZone:     0.7,
	}, nil)
}

func TestSamplerEdgeOnPress(t *testing.T) {
	dev := &scriptedDevice{state: pressed(ButtonDown)}
	s := newTestSampler(dev)
	start := time.Unix(0, 0)

	assert.Equal(t, []types.Intent{types.IntentDown}, s.SampleAt(start))
	assert.Empty(t, s.SampleAt(start.Add(16*time.Millisecond)), "held button should not re-fire before the initial delay")
}

func TestSamplerReleaseEmitsNothing(t *testing.T) {
	dev := &scriptedDevice{state: pressed(ButtonActivate)}
	s := newTestSampler(dev)
	start := time.Unix(0, 0)

	require.Len(t, s.SampleAt(start), 1)
	dev.state = State{Connected: true}
	assert.Empty(t, s.SampleAt(start.Add(16*time.Millisecond)))

	dev.state = pressed(ButtonActivate)
	assert.Equal(t, []types.Intent{types.IntentActivate}, s.SampleAt(start.Add(32*time.Millisecond)),
		"a second press after release is a new edge")
}

func TestSamplerRepeatTiming(t *testing.T) {
	dev := &scriptedDevice{state: pressed(ButtonRight)}
	s := newTestSampler(dev)
	start := time.Unix(0, 0)

	var fired []time.Duration
	for ms := 0; ms <= 400; ms += 10 {
		at := time.Duration(ms) * time.Millisecond
		if len(s.SampleAt(start.Add(at))) > 0 {
			fired = append(fired, at)
		}
	}

	want := []time.Duration{
		0,
		180 * time.Millisecond,
		230 * time.Millisecond,
		280 * time.Millisecond,
		330 * time.Millisecond,
		380 * time.Millisecond,
	}
	assert.Equal(t, want, fired)
}

func TestSamplerActivateAndCancelDoNotRepeat(t *testing.T) {
	for _, b := range []Button{ButtonActivate, ButtonCancel} {
		dev := &scriptedDevice{state: pressed(b)}
		s := newTestSampler(dev)
		start := time.Unix(0, 0)

		count := 0
		for ms := 0; ms <= 1000; ms += 10 {
			count += len(s.SampleAt(start.Add(time.Duration(ms) * time.Millisecond)))
		}
		assert.Equal(t, 1, count, "button %d should fire once per press", b)
	}
}

func TestSamplerShoulderButtonsRepeat(t *testing.T) {
	dev := &scriptedDevice{state: pressed(ButtonPageNext)}
	s := newTestSampler(dev)
	start := time.Unix(0, 0)

	require.Equal(t, []types.Intent{types.IntentPageNext}, s.SampleAt(start))
	assert.Equal(t, []types.Intent{types.IntentPageNext}, s.SampleAt(start.Add(200*time.Millisecond)))
}

func TestSamplerNoDevice(t *testing.T) {
	dev := &scriptedDevice{state: State{Connected: false, Buttons: ButtonUp}}
	s := newTestSampler(dev)

	for i := 0; i < 5; i++ {
		assert.Empty(t, s.SampleAt(time.Unix(0, int64(i)*int64(time.Millisecond))))
	}

	nilDevice := NewSampler(nil, DefaultOptions(), nil)
	assert.Empty(t, nilDevice.Sample())
}

func TestSamplerDisconnectReleasesHeldButtons(t *testing.T) {
	dev := &scriptedDevice{state: pressed(ButtonUp)}
	s := newTestSampler(dev)
	start := time.Unix(0, 0)

	require.Len(t, s.SampleAt(start), 1)
	dev.state = State{}
	assert.Empty(t, s.SampleAt(start.Add(10*time.Millisecond)))

	dev.state = pressed(ButtonUp)
	assert.Equal(t, []types.Intent{types.IntentUp}, s.SampleAt(start.Add(20*time.Millisecond)))
}

func TestSamplerPollErrorSkipsTick(t *testing.T) {
	dev := &scriptedDevice{state: pressed(ButtonLeft)}
	s := newTestSampler(dev)
	start := time.Unix(0, 0)

	require.Len(t, s.SampleAt(start), 1)

	dev.err = errors.New("hid read failed")
	assert.Empty(t, s.SampleAt(start.Add(10*time.Millisecond)))

	dev.err = nil
	assert.Empty(t, s.SampleAt(start.Add(20*time.Millisecond)),
		"an error tick must not look like a release")
}

func TestSamplerStickDeadZone(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		expect []types.Intent
	}{
		{"inside dead zone", 0.5, -0.6, nil},
		{"left", -0.9, 0, []types.Intent{types.IntentLeft}},
		{"right", 0.75, 0, []types.Intent{types.IntentRight}},
		{"up", 0, -0.8, []types.Intent{types.IntentUp}},
		{"down", 0, 0.71, []types.Intent{types.IntentDown}},
		{"diagonal", 0.9, 0.9, []types.Intent{types.IntentDown, types.IntentRight}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dev := &scriptedDevice{state: State{Connected: true, StickX: tc.x, StickY: tc.y}}
			s := newTestSampler(dev)
			got := s.SampleAt(time.Unix(0, 0))
			if tc.expect == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestSamplerStickMergesWithDpad(t *testing.T) {
	dev := &scriptedDevice{state: State{Connected: true, Buttons: ButtonDown, StickY: 0.95}}
	s := newTestSampler(dev)

	assert.Equal(t, []types.Intent{types.IntentDown}, s.SampleAt(time.Unix(0, 0)),
		"stick and d-pad on the same direction produce a single edge")
}

func TestSamplerDisableStick(t *testing.T) {
	dev := &scriptedDevice{state: State{Connected: true, StickX: -1}}
	s := NewSampler(dev, Options{DisableStick: true}, nil)
	assert.Empty(t, s.SampleAt(time.Unix(0, 0)))
}

func TestSamplerSetOptionsNormalizes(t *testing.T) {
	s := NewSampler(&scriptedDevice{}, Options{}, nil)
	assert.Equal(t, DefaultOptions(), s.Options())

	s.SetOptions(Options{InitialDelay: 300 * time.Millisecond, RepeatRate: 20 * time.Millisecond, DeadZone: 2})
	opts := s.Options()
	assert.Equal(t, 300*time.Millisecond, opts.InitialDelay)
	assert.Equal(t, 20*time.Millisecond, opts.RepeatRate)
	assert.Equal(t, DefaultDeadZone, opts.DeadZone)
}

func TestPumpQueuesAndDrains(t *testing.T) {
	dev := &scriptedDevice{state: pressed(ButtonUp | ButtonActivate)}
	p := NewPump(newTestSampler(dev), 60, nil)

	p.Tick()
	assert.Equal(t, []types.Intent{types.IntentUp, types.IntentActivate}, p.Drain())
	assert.Empty(t, p.Drain())
}

func TestPumpDropsWhenFull(t *testing.T) {
	toggle := false
	dev := DeviceFunc(func() (State, error) {
		toggle = !toggle
		if toggle {
			return pressed(ButtonActivate), nil
		}
		return State{Connected: true}, nil
	})
	p := NewPump(NewSampler(dev, DefaultOptions(), nil), 60, nil)

	for i := 0; i < pumpBuffer*4; i++ {
		p.Tick()
	}
	assert.Len(t, p.Drain(), pumpBuffer)
}

func TestPumpRunStopsOnCancel(t *testing.T) {
	dev := &scriptedDevice{state: State{Connected: true}}
	p := NewPump(newTestSampler(dev), 1000, nil)
	assert.Equal(t, time.Millisecond, p.Interval())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not stop after cancel")
	}
}
