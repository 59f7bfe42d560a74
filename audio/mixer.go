package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	resampleQuality = 4
	// speakerLatency is the size of the speaker buffer.
	speakerLatency = time.Second / 20
)

// Sink consumes the mixer output, normally the system speaker.
type Sink interface {
	Play(s ...beep.Streamer)
}

type speakerSink struct{}

func (speakerSink) Play(s ...beep.Streamer) { speaker.Play(s...) }

// Mixer sums a fixed number of channels into one stream. It is safe to use
// from the game loop while the sink pulls samples from its own goroutine.
type Mixer struct {
	rate beep.SampleRate

	mu       sync.Mutex
	channels []beep.Streamer // nil when free
	scratch  [][2]float64
}

// OpenMixer initializes the system speaker at rate and plays a new mixer
// on it.
func OpenMixer(rate beep.SampleRate, channels int) (*Mixer, error) {
	if err := speaker.Init(rate, rate.N(speakerLatency)); err != nil {
		return nil, fmt.Errorf("open speaker: %w", err)
	}
	return NewMixer(rate, channels, speakerSink{}), nil
}

// NewMixer creates a mixer with the given number of channels and starts it
// on sink. Chunks with a different sample rate are resampled to rate.
func NewMixer(rate beep.SampleRate, channels int, sink Sink) *Mixer {
	if channels <= 0 {
		panic(fmt.Sprintf("audio: mixer needs at least one channel, got %d", channels))
	}
	m := &Mixer{
		rate:     rate,
		channels: make([]beep.Streamer, channels),
	}
	sink.Play(m)
	return m
}

// Channels returns the number of mixer channels.
func (m *Mixer) Channels() int { return len(m.channels) }

// Play plays c on channel and returns the channel used. Channel -1 picks the
// first free channel; -1 is returned when none is free or channel is out of
// range. A sound already on the channel is replaced. loops > 0 plays the
// chunk loops+1 times, -1 loops until halted.
func (m *Mixer) Play(c *Chunk, channel, loops int) int {
	s := c.streamer(m.rate, loops)

	m.mu.Lock()
	defer m.mu.Unlock()

	if channel == -1 {
		channel = m.firstFree()
		if channel < 0 {
			return -1
		}
	}
	if channel < 0 || channel >= len(m.channels) {
		return -1
	}
	m.channels[channel] = s
	return channel
}

func (m *Mixer) firstFree() int {
	for i, s := range m.channels {
		if s == nil {
			return i
		}
	}
	return -1
}

// IsPlaying reports whether channel is playing. Channel -1 asks whether any
// channel is.
func (m *Mixer) IsPlaying(channel int) bool {
	if channel == -1 {
		return m.AnyPlaying()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return channel >= 0 && channel < len(m.channels) && m.channels[channel] != nil
}

// AnyPlaying reports whether at least one channel is playing.
func (m *Mixer) AnyPlaying() bool {
	return m.Playing() > 0
}

// Playing returns the number of busy channels.
func (m *Mixer) Playing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.channels {
		if s != nil {
			n++
		}
	}
	return n
}

// Halt stops channel, or every channel for -1.
func (m *Mixer) Halt(channel int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if channel == -1 {
		clear(m.channels)
		return
	}
	if channel >= 0 && channel < len(m.channels) {
		m.channels[channel] = nil
	}
}

// Stream implements beep.Streamer. It never drains; idle channels mix to
// silence and finished channels are freed.
func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(samples)
	if cap(m.scratch) < len(samples) {
		m.scratch = make([][2]float64, len(samples))
	}
	tmp := m.scratch[:len(samples)]

	for i, s := range m.channels {
		if s == nil {
			continue
		}
		sn, sok := s.Stream(tmp)
		for j := range tmp[:sn] {
			samples[j][0] += tmp[j][0]
			samples[j][1] += tmp[j][1]
		}
		if !sok || sn < len(tmp) {
			m.channels[i] = nil
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (m *Mixer) Err() error { return nil }
