// Package audio provides a WAV-file input source usable as an example
// graph feed: a go-audio/wav decode loop that produces the per-channel
// float32 blocks this module's Tee.Feed expects, deinterleaving the
// decoder's single sample slice on the way in.
package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Source reads PCM samples from a WAV file one block at a time. It is
// not safe for concurrent use, and cannot be reused after ReadBlock
// returns io.EOF.
type Source struct {
	file       *os.File
	decoder    *wav.Decoder
	channels   int
	sampleRate int
	intBuf     *goaudio.IntBuffer
}

// OpenSource opens path and reads its WAV header, leaving the file
// positioned at the start of the PCM data.
func OpenSource(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		file.Close()
		return nil, fmt.Errorf("audio: %s is not a valid wav file", path)
	}
	decoder.ReadInfo()

	s := &Source{
		file:       file,
		decoder:    decoder,
		channels:   int(decoder.NumChans),
		sampleRate: int(decoder.SampleRate),
	}
	return s, nil
}

// Channels returns the file's channel count.
func (s *Source) Channels() int { return s.channels }

// SampleRate returns the file's sample rate in Hz.
func (s *Source) SampleRate() int { return s.sampleRate }

// ReadBlock fills each channel slice in dst (one per channel, all the
// same length) with the next block of samples, converting the file's
// integer PCM to float32 in [-1, 1]. It returns the number of samples
// read per channel; a short block followed by io.EOF marks end of file.
func (s *Source) ReadBlock(dst [][]float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	blockSize := len(dst[0])
	if s.intBuf == nil || len(s.intBuf.Data) != blockSize*s.channels {
		s.intBuf = &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: s.channels, SampleRate: s.sampleRate},
			Data:   make([]int, blockSize*s.channels),
		}
	}

	n, err := s.decoder.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, err
	}
	frames := n / s.channels
	maxVal := float32(int(1) << uint(s.decoder.BitDepth-1))
	for ch := range dst {
		for i := 0; i < frames; i++ {
			dst[ch][i] = float32(s.intBuf.Data[i*s.channels+ch]) / maxVal
		}
		for i := frames; i < blockSize; i++ {
			dst[ch][i] = 0
		}
	}
	if frames < blockSize {
		return frames, io.EOF
	}
	return frames, nil
}

// Close releases the underlying file handle.
func (s *Source) Close() error {
	return s.file.Close()
}
