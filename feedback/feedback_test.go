package feedback

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/puttempo-go"
)

type mockPlayer struct {
	mock.Mock
}

func (m *mockPlayer) Play(ctx context.Context, id puttempo.SoundID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSoundEmitter_PlaySound(t *testing.T) {
	player := new(mockPlayer)
	player.On("Play", mock.Anything, puttempo.SoundWood).Return(nil).Twice()
	player.On("Play", mock.Anything, puttempo.SoundBell).Return(errors.New("device busy")).Once()
	s := NewSoundEmitter(t.Context(), player, nil)

	s.PlaySound(puttempo.SoundWood)
	s.PlaySound(puttempo.SoundBell)
	s.PlaySound(puttempo.SoundWood)
	s.Wait()

	player.AssertExpectations(t)
}

func TestSoundEmitter_Silent(t *testing.T) {
	player := new(mockPlayer)
	s := NewSoundEmitter(t.Context(), player, nil)

	s.PlaySound(puttempo.SoundSilent)
	s.Wait()

	player.AssertNotCalled(t, "Play", mock.Anything, mock.Anything)
}

func TestSoundEmitter_CanceledContext(t *testing.T) {
	player := new(mockPlayer)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	s := NewSoundEmitter(ctx, player, nil)

	s.PlaySound(puttempo.SoundClick)
	s.Wait()

	player.AssertNotCalled(t, "Play", mock.Anything, mock.Anything)
}

func TestClipCache(t *testing.T) {
	var mu sync.Mutex
	loads := map[puttempo.SoundID]int{}
	cache := NewClipCache(func(id puttempo.SoundID) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		loads[id]++
		if id == puttempo.SoundSpring {
			return "", os.ErrNotExist
		}
		return "clip:" + string(id), nil
	})

	clip, err := cache.Get(puttempo.SoundClick)
	require.NoError(t, err)
	assert.Equal(t, "clip:click", clip)
	_, _ = cache.Get(puttempo.SoundClick)
	assert.Equal(t, 1, loads[puttempo.SoundClick], "loaded once")

	_, err = cache.Get(puttempo.SoundSpring)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, _ = cache.Get(puttempo.SoundSpring)
	assert.Equal(t, 2, loads[puttempo.SoundSpring], "failures are retried")
	assert.Equal(t, 1, cache.Len())
}

func TestClipCache_Preload(t *testing.T) {
	cache := NewClipCache(func(id puttempo.SoundID) ([]byte, error) {
		if id == puttempo.SoundMetal {
			return nil, errors.New("corrupt")
		}
		return []byte(id), nil
	})

	err := cache.Preload(puttempo.SoundSilent, puttempo.SoundClick, puttempo.SoundMetal, puttempo.SoundWood)

	assert.EqualError(t, err, "corrupt")
	assert.Equal(t, 2, cache.Len())
}

type fakeActuator struct {
	mu     sync.Mutex
	pulses []puttempo.Intensity
	err    error
}

func (a *fakeActuator) Pulse(i puttempo.Intensity) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pulses = append(a.pulses, i)
	return a.err
}

func (a *fakeActuator) Pulses() []puttempo.Intensity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]puttempo.Intensity(nil), a.pulses...)
}

type blockingActuator struct {
	release chan struct{}
	done    chan puttempo.Intensity
}

func (a blockingActuator) Pulse(i puttempo.Intensity) error {
	<-a.release
	a.done <- i
	return nil
}

func TestHapticEmitter(t *testing.T) {
	a := &fakeActuator{}
	h := NewHapticEmitter(a, nil)
	assert.True(t, h.Enabled())

	h.Vibrate(puttempo.IntensityLight)
	h.Wait()
	h.SetEnabled(false)
	h.Vibrate(puttempo.IntensityMedium)
	h.Wait()
	h.SetEnabled(true)
	h.Vibrate(puttempo.IntensityHeavy)
	h.Wait()

	assert.Equal(t, []puttempo.Intensity{puttempo.IntensityLight, puttempo.IntensityHeavy}, a.Pulses())
}

func TestHapticEmitter_DoesNotBlock(t *testing.T) {
	a := blockingActuator{release: make(chan struct{}), done: make(chan puttempo.Intensity, 1)}
	h := NewHapticEmitter(a, nil)

	returned := make(chan struct{})
	go func() {
		h.Vibrate(puttempo.IntensityHeavy)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Vibrate waited for the actuator")
	}

	close(a.release)
	h.Wait()
	assert.Equal(t, puttempo.IntensityHeavy, <-a.done)
}

func TestHapticEmitter_UnsupportedDevice(t *testing.T) {
	a := &fakeActuator{err: errors.New("no vibrator")}
	h := NewHapticEmitter(a, nil)

	assert.NotPanics(t, func() { h.Vibrate(puttempo.IntensityMedium) })
	h.Wait()
	assert.Len(t, a.Pulses(), 1)
}

func TestLoadWAV(t *testing.T) {
	frames := []int16{100, -100, 200, -200, 300, -300, 400, -400}
	path := filepath.Join(t.TempDir(), "click.wav")
	require.NoError(t, os.WriteFile(path, pcmWAV(SampleRate, frames), 0o644))

	pcm, err := loadWAV(SampleRate, path)

	require.NoError(t, err)
	assert.Len(t, pcm, len(frames)*2)
	assert.Equal(t, int16(100), int16(binary.LittleEndian.Uint16(pcm[0:2])))
}

func TestLoadWAV_Missing(t *testing.T) {
	_, err := loadWAV(SampleRate, filepath.Join(t.TempDir(), "nope.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// pcmWAV encodes interleaved 16-bit stereo samples as a WAV file.
func pcmWAV(sampleRate int, samples []int16) []byte {
	dataLen := len(samples) * 2
	b := make([]byte, 0, 44+dataLen)
	b = append(b, "RIFF"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(36+dataLen))
	b = append(b, "WAVEfmt "...)
	b = binary.LittleEndian.AppendUint32(b, 16)
	b = binary.LittleEndian.AppendUint16(b, 1) // PCM
	b = binary.LittleEndian.AppendUint16(b, 2)
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate*4))
	b = binary.LittleEndian.AppendUint16(b, 4)
	b = binary.LittleEndian.AppendUint16(b, 16)
	b = append(b, "data"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(dataLen))
	for _, s := range samples {
		b = binary.LittleEndian.AppendUint16(b, uint16(s))
	}
	return b
}
