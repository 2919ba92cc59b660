// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or use this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorReader struct{ err error }

func (e *errorReader) Read(p []byte) (int, error) { return 0, e.err }

type foreignBuffer struct{ bytes.Buffer }

func TestBufferInterface(t *testing.T) {
	tests := []struct {
		name  string
		setup func(buf Buffer)
		check func(t *testing.T, buf Buffer)
	}{
		{
			name: "Write byte slice",
			setup: func(buf Buffer) {
				buf.Write([]byte{0x30, 0x03})
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, []byte{0x30, 0x03}, buf.Bytes())
				assert.Equal(t, 2, buf.Len())
			},
		},
		{
			name: "Mixed writes",
			setup: func(buf Buffer) {
				buf.WriteByte(0x04)
				buf.WriteString("abc")
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "\x04abc", buf.String())
			},
		},
		{
			name: "Reset clears buffer",
			setup: func(buf Buffer) {
				buf.WriteString("data to clear")
				buf.Reset()
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, 0, buf.Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer Default.Put(buf)

			tt.setup(buf)
			tt.check(t, buf)
		})
	}
}

func TestPool(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Put resets returned buffers",
			testFunc: func(t *testing.T) {
				buf := Default.Get()
				buf.WriteString("leftover")
				Default.Put(buf)

				again := Default.Get()
				defer Default.Put(again)
				assert.Equal(t, 0, again.Len())
			},
		},
		{
			name: "Put ignores foreign buffers",
			testFunc: func(t *testing.T) {
				assert.NotPanics(t, func() { Default.Put(&foreignBuffer{}) })
			},
		},
		{
			name: "Concurrent use",
			testFunc: func(t *testing.T) {
				var wg sync.WaitGroup
				for i := range 50 {
					wg.Add(1)
					go func(id int) {
						defer wg.Done()
						buf := Default.Get()
						defer Default.Put(buf)
						buf.WriteByte(byte(id))
						assert.Equal(t, 1, buf.Len())
					}(i)
				}
				wg.Wait()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestReadAll(t *testing.T) {
	t.Run("copies the content out of the pool", func(t *testing.T) {
		data, err := ReadAll(strings.NewReader("certificate bytes"))
		require.NoError(t, err)
		assert.Equal(t, "certificate bytes", string(data))
	})

	t.Run("propagates reader errors", func(t *testing.T) {
		want := errors.New("connection reset")
		_, err := ReadAll(&errorReader{err: want})
		assert.ErrorIs(t, err, want)
	})
}
