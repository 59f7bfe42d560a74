package opengl

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestFlipRows(t *testing.T) {
	tests := []struct {
		name   string
		in     []byte
		rowLen int
		want   []byte
	}{
		{"odd rows", []byte{1, 1, 2, 2, 3, 3}, 2, []byte{3, 3, 2, 2, 1, 1}},
		{"even rows", []byte{1, 2, 3, 4}, 1, []byte{4, 3, 2, 1}},
		{"single row", []byte{7, 8, 9}, 3, []byte{7, 8, 9}},
		{"empty", []byte{}, 4, []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flipRows(tt.in, tt.rowLen)
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

// driverLog mimics glGetShaderInfoLog: it writes at most n-1 bytes of log
// followed by a terminator and records the buffer size it was given.
func driverLog(log string, gotN *int32) func(n int32, buf *uint8) {
	return func(n int32, buf *uint8) {
		*gotN = n
		dst := unsafe.Slice(buf, n)
		k := copy(dst[:n-1], log)
		dst[k] = 0
	}
}

func TestReadLog(t *testing.T) {
	tests := []struct {
		name   string
		log    string
		maxLen int
		want   string
		wantN  int32
	}{
		{"short", "bad token", 1024, "bad token", 10},
		{"capped", strings.Repeat("e", 4000), 1024, strings.Repeat("e", 1024), 1025},
		{"exact", strings.Repeat("e", 1024), 1024, strings.Repeat("e", 1024), 1025},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotN int32
			got := readLog(int32(len(tt.log)+1), tt.maxLen, driverLog(tt.log, &gotN))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantN, gotN)
		})
	}
}

func TestReadLogEmpty(t *testing.T) {
	called := false
	get := func(int32, *uint8) { called = true }
	assert.Empty(t, readLog(0, 1024, get))
	assert.Empty(t, readLog(1, 1024, get))
	assert.False(t, called)
}
