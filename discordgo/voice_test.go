package discordgo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/feedback"
)

type fakeConn struct {
	speaking     []bool
	speakErr     error
	disconnected bool
}

func (c *fakeConn) Speaking(b bool) error {
	c.speaking = append(c.speaking, b)
	return c.speakErr
}

func (c *fakeConn) Disconnect() error {
	c.disconnected = true
	return nil
}

func testClips() *feedback.ClipCache[[][]byte] {
	return feedback.NewClipCache(func(id puttempo.SoundID) ([][]byte, error) {
		switch id {
		case puttempo.SoundClick:
			return [][]byte{{1}, {2}, {3}}, nil
		case puttempo.SoundBell:
			return nil, nil
		default:
			return nil, errors.New("no clip")
		}
	})
}

func TestVoicePlayer_Play(t *testing.T) {
	conn := &fakeConn{}
	send := make(chan []byte, 10)
	p := newVoicePlayer(conn, send, testClips())

	require.NoError(t, p.Play(t.Context(), puttempo.SoundClick))

	close(send)
	var got [][]byte
	for packet := range send {
		got = append(got, packet)
	}
	assert.Equal(t, [][]byte{{1}, {2}, {3}}, got)
	assert.Equal(t, []bool{true, false}, conn.speaking)
}

func TestVoicePlayer_EmptyAndMissingClips(t *testing.T) {
	conn := &fakeConn{}
	p := newVoicePlayer(conn, make(chan []byte), testClips())

	assert.NoError(t, p.Play(t.Context(), puttempo.SoundBell))
	assert.EqualError(t, p.Play(t.Context(), puttempo.SoundWood), "no clip")
	assert.Empty(t, conn.speaking)
}

func TestVoicePlayer_CanceledWhileSending(t *testing.T) {
	conn := &fakeConn{}
	p := newVoicePlayer(conn, make(chan []byte), testClips()) // nobody receives
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := p.Play(ctx, puttempo.SoundClick)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []bool{true, false}, conn.speaking)
}

func TestVoicePlayer_SpeakingError(t *testing.T) {
	conn := &fakeConn{speakErr: errors.New("no VoiceConnection websocket")}
	p := newVoicePlayer(conn, make(chan []byte, 10), testClips())

	assert.EqualError(t, p.Play(t.Context(), puttempo.SoundClick), "no VoiceConnection websocket")
}

func TestVoicePlayer_Close(t *testing.T) {
	conn := &fakeConn{}
	p := newVoicePlayer(conn, nil, testClips())

	require.NoError(t, p.Close())
	assert.True(t, conn.disconnected)
}
