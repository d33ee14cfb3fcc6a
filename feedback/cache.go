package feedback

import (
	"sync"

	"github.com/benjamonnguyen/puttempo-go"
)

// ClipCache lazily loads and keeps one clip per sound. Failed loads are not
// cached, so a clip added after start-up is picked up on the next play.
type ClipCache[T any] struct {
	mu    sync.Mutex
	clips map[puttempo.SoundID]T
	load  func(puttempo.SoundID) (T, error)
}

func NewClipCache[T any](load func(puttempo.SoundID) (T, error)) *ClipCache[T] {
	return &ClipCache[T]{
		clips: make(map[puttempo.SoundID]T),
		load:  load,
	}
}

func (c *ClipCache[T]) Get(id puttempo.SoundID) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if clip, ok := c.clips[id]; ok {
		return clip, nil
	}
	clip, err := c.load(id)
	if err != nil {
		var zero T
		return zero, err
	}
	c.clips[id] = clip
	return clip, nil
}

// Preload loads ids ahead of the first play and returns the first error.
func (c *ClipCache[T]) Preload(ids ...puttempo.SoundID) error {
	var firstErr error
	for _, id := range ids {
		if id == puttempo.SoundSilent {
			continue
		}
		if _, err := c.Get(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *ClipCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clips)
}
