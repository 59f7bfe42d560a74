// Package audio plays decoded sound chunks on a fixed set of mixer channels.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var oggMagic = []byte("OggS")

// ErrEmptyChunk is returned for input without samples.
var ErrEmptyChunk = errors.New("audio: empty chunk")

// Chunk is a sound fully decoded into memory. One chunk can play on several
// channels at once.
type Chunk struct {
	buf *beep.Buffer
}

// NewChunk decodes a WAV or Ogg Vorbis file.
func NewChunk(raw []byte) (*Chunk, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyChunk
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	if bytes.HasPrefix(raw, oggMagic) {
		stream, format, err = vorbis.Decode(io.NopCloser(bytes.NewReader(raw)))
	} else {
		stream, format, err = wav.Decode(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	defer stream.Close()

	c, err := newChunk(stream, format)
	if err != nil {
		return nil, err
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return c, nil
}

func newChunk(s beep.Streamer, format beep.Format) (*Chunk, error) {
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if buf.Len() == 0 {
		return nil, ErrEmptyChunk
	}
	return &Chunk{buf: buf}, nil
}

// Format returns the sample format the chunk was decoded with.
func (c *Chunk) Format() beep.Format { return c.buf.Format() }

// Len returns the number of samples.
func (c *Chunk) Len() int { return c.buf.Len() }

// Duration returns the length of one playthrough.
func (c *Chunk) Duration() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}

// streamer returns a fresh playback of the chunk at rate. loops > 0 repeats
// the chunk loops more times, loops < 0 repeats forever.
func (c *Chunk) streamer(rate beep.SampleRate, loops int) beep.Streamer {
	play := c.buf.Streamer(0, c.buf.Len())
	var s beep.Streamer = play
	switch {
	case loops < 0:
		s = beep.Loop(-1, play)
	case loops > 0:
		s = beep.Loop(loops+1, play)
	}
	if from := c.buf.Format().SampleRate; from != rate {
		s = beep.Resample(resampleQuality, from, rate, s)
	}
	return s
}
