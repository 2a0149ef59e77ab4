package standalone

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const audioSampleRate = 48000

// oto context singleton shared by every sound the UI plays
var (
	otoCtx      *oto.Context
	otoInitOnce sync.Once
	otoInitErr  error
)

// ensureOtoContext initializes the oto audio context on first use.
func ensureOtoContext() (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   audioSampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var readyChan chan struct{}
		otoCtx, readyChan, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-readyChan
	})
	return otoCtx, otoInitErr
}

// SoundPlayer plays short one-shot sounds. A new sound cuts off the
// previous one so rapid navigation never stacks clicks.
type SoundPlayer struct {
	mu     sync.Mutex
	player *oto.Player
	volume float64
}

// NewSoundPlayer creates a player at the given volume (0.0 to 1.0)
func NewSoundPlayer(volume float64) *SoundPlayer {
	return &SoundPlayer{volume: math.Max(0, math.Min(volume, 1))}
}

// Play starts data, which must be 48kHz stereo S16LE
func (p *SoundPlayer) Play(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	ctx, err := ensureOtoContext()
	if err != nil {
		return fmt.Errorf("oto audio not available: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil {
		p.player.Close()
	}
	p.player = ctx.NewPlayer(bytes.NewReader(data))
	p.player.SetVolume(p.volume)
	p.player.Play()
	return nil
}

// Close cleans up audio resources
func (p *SoundPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil {
		p.player.Close()
		p.player = nil
	}
}

// generateClick creates the focus-move tick: a short, soft blip that
// falls in pitch (48kHz stereo S16LE)
func generateClick() []byte {
	sampleRate := audioSampleRate
	const durationMs = 35
	duration := float64(durationMs) / 1000
	numSamples := sampleRate * durationMs / 1000

	samples := make([]byte, numSamples*4) // 2 bytes * 2 channels

	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(sampleRate)

		// Sweep 1800Hz down to 1200Hz over the click
		freq := 1800 - 600*(t/duration)

		attackTime := 0.003
		var envelope float64
		if t < attackTime {
			envelope = (1 - math.Cos(math.Pi*t/attackTime)) / 2
		} else {
			envelope = math.Exp(-6 * (t - attackTime) / duration)
		}

		sample := math.Sin(2*math.Pi*freq*t) * envelope
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}

		value := int16(sample * 6000)

		idx := i * 4
		samples[idx] = byte(value)
		samples[idx+1] = byte(value >> 8)
		samples[idx+2] = byte(value)
		samples[idx+3] = byte(value >> 8)
	}

	return samples
}
