package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/benjamonnguyen/puttempo-go"
)

// opusClipLoader reads <dir>/<sound>.dca: a sequence of int16 little-endian
// frame lengths, each followed by one opus frame.
func opusClipLoader(dir string) func(puttempo.SoundID) ([][]byte, error) {
	return func(id puttempo.SoundID) ([][]byte, error) {
		if dir == "" {
			return nil, fmt.Errorf("no opus sound dir configured for %s", id)
		}
		path := filepath.Join(dir, string(id)+".dca")
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close() //nolint
		return readOpusPackets(f)
	}
}

func readOpusPackets(r io.Reader) ([][]byte, error) {
	var packets [][]byte
	var frameLen int16
	for {
		err := binary.Read(r, binary.LittleEndian, &frameLen)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return packets, nil
			}
			return nil, fmt.Errorf("error reading frame length: %w", err)
		}
		if frameLen <= 0 {
			return nil, fmt.Errorf("invalid frame length %d", frameLen)
		}

		packet := make([]byte, frameLen)
		// Should not be any end of file errors
		if _, err := io.ReadFull(r, packet); err != nil {
			return nil, fmt.Errorf("error reading frame: %w", err)
		}
		packets = append(packets, packet)
	}
}
