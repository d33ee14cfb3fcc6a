// Package discordgo provides Discord API adapters using package github.com/bwmarrin/discordgo
package discordgo

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/feedback"
)

type discordgoAdapter struct {
	cl    *discordgo.Session
	clips *feedback.ClipCache[[][]byte]
	l     *log.Logger
}

// NewDiscordAdapter plays opus clips from clips into voice channels.
func NewDiscordAdapter(cl *discordgo.Session, clips *feedback.ClipCache[[][]byte], l *log.Logger) *discordgoAdapter {
	if l == nil {
		l = log.Default()
	}
	return &discordgoAdapter{
		cl:    cl,
		clips: clips,
		l:     l,
	}
}

// JoinVoice connects to a voice channel, muted to incoming audio.
func (w *discordgoAdapter) JoinVoice(gID, cID string) (*VoicePlayer, error) {
	conn, err := w.cl.ChannelVoiceJoin(gID, cID, false, true)
	if err != nil {
		return nil, fmt.Errorf("failed to join voice channel %s: %w", cID, err)
	}
	w.l.Debug("joined voice channel", "gid", gID, "cid", cID)
	return newVoicePlayer(conn, conn.OpusSend, w.clips), nil
}

type voiceConn interface {
	Speaking(bool) error
	Disconnect() error
}

// VoicePlayer is a feedback.Player for one voice connection. Plays are
// serialized so clips never interleave on the opus stream.
type VoicePlayer struct {
	mu    sync.Mutex
	conn  voiceConn
	send  chan<- []byte
	clips *feedback.ClipCache[[][]byte]
}

func newVoicePlayer(conn voiceConn, send chan<- []byte, clips *feedback.ClipCache[[][]byte]) *VoicePlayer {
	return &VoicePlayer{
		conn:  conn,
		send:  send,
		clips: clips,
	}
}

func (p *VoicePlayer) Play(ctx context.Context, id puttempo.SoundID) error {
	packets, err := p.clips.Get(id)
	if err != nil {
		return err
	}
	if len(packets) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.conn.Speaking(true); err != nil {
		return err
	}
	for _, packet := range packets {
		select {
		case <-ctx.Done():
			_ = p.conn.Speaking(false)
			return ctx.Err()
		case p.send <- packet:
		}
	}
	return p.conn.Speaking(false)
}

func (p *VoicePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.Disconnect()
}
