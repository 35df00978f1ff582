// Command enginedemo is a minimal host binding an AudioClient to the
// default system audio device via portaudio: Initialize/OpenDefaultStream/
// Start driving a full-duplex stream, rather than an output-only sink.
//
// It wires a single Gain OpPipe between each input channel and the
// matching output channel, so running it demonstrates the whole pull
// chain end to end: device input -> graph input boundary -> OpPipe ->
// graph output boundary -> device output.
package main

import (
	"log"
	"os"
	"os/signal"

	"github.com/gordonklaus/portaudio"

	pipe "github.com/dudk/graphpipe"
	"github.com/dudk/graphpipe/client"
	ilog "github.com/dudk/graphpipe/internal/log"
	"github.com/dudk/graphpipe/op"
)

const (
	sampleRate = 44100
	blockSize  = 256
	channels   = 2
)

func main() {
	logger := ilog.New()

	c, err := client.New(blockSize, channels, channels, logger)
	if err != nil {
		log.Fatalf("enginedemo: %v", err)
	}

	gain := pipe.NewOpPipe(&op.Gain{Linear: 0.8}, channels)
	for ch := 0; ch < channels; ch++ {
		if err := gain.AddSource(c.Graph().Input(ch)); err != nil {
			log.Fatalf("enginedemo: wiring input %d: %v", ch, err)
		}
		if err := c.Graph().Output(ch).AddSource(gain); err != nil {
			log.Fatalf("enginedemo: wiring output %d: %v", ch, err)
		}
	}

	if err := portaudio.Initialize(); err != nil {
		log.Fatalf("enginedemo: portaudio init: %v", err)
	}
	defer portaudio.Terminate()

	interleavedIn := make([]float32, blockSize*channels)
	interleavedOut := make([]float32, blockSize*channels)

	stream, err := portaudio.OpenDefaultStream(channels, channels, float64(sampleRate), blockSize, &interleavedIn, &interleavedOut)
	if err != nil {
		log.Fatalf("enginedemo: open stream: %v", err)
	}
	defer stream.Close()

	if err := c.Configure(client.AudioConfig{
		SampleRate:     sampleRate,
		BufferSize:     blockSize,
		Fixed:          true,
		InputChannels:  channels,
		OutputChannels: channels,
	}); err != nil {
		log.Fatalf("enginedemo: configure: %v", err)
	}

	inChans := make([][]float32, channels)
	outChans := make([][]float32, channels)
	for i := range inChans {
		inChans[i] = make([]float32, blockSize)
		outChans[i] = make([]float32, blockSize)
	}

	if err := stream.Start(); err != nil {
		log.Fatalf("enginedemo: start stream: %v", err)
	}
	defer stream.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	logger.Info("enginedemo: running, ctrl-C to stop")

	var t int64
	nanosPerBlock := int64(blockSize) * 1_000_000_000 / int64(sampleRate)
	for {
		select {
		case <-stop:
			c.Shutdown()
			return
		default:
		}

		if err := stream.Read(); err != nil {
			logger.Warn("enginedemo: stream read: " + err.Error())
			continue
		}
		deinterleave(interleavedIn, inChans)
		c.Process(t, inChans, outChans, blockSize)
		interleave(outChans, interleavedOut)
		if err := stream.Write(); err != nil {
			logger.Warn("enginedemo: stream write: " + err.Error())
		}
		t += nanosPerBlock
	}
}

func deinterleave(src []float32, dst [][]float32) {
	for ch := range dst {
		for i := range dst[ch] {
			dst[ch][i] = src[i*len(dst)+ch]
		}
	}
}

func interleave(src [][]float32, dst []float32) {
	for ch := range src {
		for i := range src[ch] {
			dst[i*len(src)+ch] = src[ch][i]
		}
	}
}
