// Package client implements the AudioClient adapter: the bidirectional
// boundary between an external audio device callback and a graph.Graph,
// including external-buffer sub-blocking so every internal block sees a
// sample-locked, fixed-size chunk of device audio regardless of the
// device's own callback size.
package client

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dudk/graphpipe/graph"
	"github.com/dudk/graphpipe/internal/errs"
	"github.com/dudk/graphpipe/internal/log"
	"github.com/dudk/graphpipe/signal"
)

// AudioConfig describes the external audio device the client adapter is
// bound to. Extensions is an open slot for host-specific configuration
// this module's core does not interpret.
type AudioConfig struct {
	SampleRate     int
	BufferSize     int
	Fixed          bool
	InputChannels  int
	OutputChannels int
	Extensions     []interface{}
}

// Listener observes the client adapter's lifecycle: Configure runs in
// registration order and every listener runs even if an earlier one
// fails; Process runs once per internal sub-block; Shutdown errors are
// logged, not propagated.
type Listener interface {
	Configure(cfg AudioConfig) error
	Process(timeNanos int64)
	Shutdown()
}

// AudioClient adapts one graph.Graph to an external audio device: it
// owns the graph's input and output boundary Pipes and drives them from
// Process.
type AudioClient struct {
	internalBlockSize int
	inputChannels     int
	outputChannels    int

	log log.Logger
	g   *graph.Graph

	mu        sync.Mutex
	listeners []Listener

	cfg           AudioConfig
	nanosPerBlock int64
	activeOutputs int
	outScratch    []*signal.Buffer
	prevTime      int64
	configured    bool
}

// New returns an AudioClient with a fresh Graph of inputChannels inputs
// and outputChannels outputs (outputChannels must be at least 1).
// internalBlockSize must be positive: this implementation always fixes
// the internal block size at construction rather than deferring to the
// first Configure call, so that host code can wire internal Pipes to the
// graph's boundaries before the device is ever configured.
func New(internalBlockSize, inputChannels, outputChannels int, logger log.Logger) (*AudioClient, error) {
	if outputChannels < 1 {
		return nil, fmt.Errorf("%w: need at least one output channel", ErrConfig)
	}
	if internalBlockSize <= 0 {
		return nil, fmt.Errorf("%w: internal block size must be positive", ErrConfig)
	}
	if logger == nil {
		logger = log.Silent
	}
	c := &AudioClient{
		internalBlockSize: internalBlockSize,
		inputChannels:      inputChannels,
		outputChannels:     outputChannels,
		log:                logger,
	}
	c.g = graph.New(internalBlockSize, inputChannels, outputChannels, logger)
	return c, nil
}

// Graph exposes the adapter's Graph so host code can wire internal
// Pipes to its input/output boundaries before (or after) Configure.
func (c *AudioClient) Graph() *graph.Graph { return c.g }

// AddListener registers l. Copy-on-write keeps a concurrent Process call
// from ever observing a partially updated listener slice.
func (c *AudioClient) AddListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]Listener, len(c.listeners)+1)
	copy(next, c.listeners)
	next[len(next)-1] = l
	c.listeners = next
}

func (c *AudioClient) snapshotListeners() []Listener {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listeners
}

// Configure validates cfg, allocates per-output scratch buffers, runs
// every listener's Configure in insertion order, and runs the graph's
// init hook. Every listener is given a chance to configure even if an
// earlier one fails; their errors are merged into a single errs.List.
func (c *AudioClient) Configure(cfg AudioConfig) error {
	if !cfg.Fixed {
		return fmt.Errorf("%w: external buffer size must be fixed", ErrConfig)
	}
	if cfg.BufferSize%c.internalBlockSize != 0 {
		return fmt.Errorf("%w: external buffer size %d is not a multiple of internal block size %d",
			ErrConfig, cfg.BufferSize, c.internalBlockSize)
	}
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrConfig)
	}

	c.cfg = cfg
	c.nanosPerBlock = int64(c.internalBlockSize) * 1_000_000_000 / int64(cfg.SampleRate)
	c.g.SetSampleRate(cfg.SampleRate)

	c.activeOutputs = cfg.OutputChannels
	if c.activeOutputs > c.outputChannels {
		c.activeOutputs = c.outputChannels
	}
	c.outScratch = make([]*signal.Buffer, c.outputChannels)
	for i := range c.outScratch {
		c.outScratch[i] = signal.New(cfg.SampleRate, c.internalBlockSize)
	}

	var failures errs.List
	for _, l := range c.snapshotListeners() {
		if err := l.Configure(cfg); err != nil {
			failures = append(failures, err)
		}
	}
	if err := failures.Ret(); err != nil {
		return err
	}

	c.g.HandleInit()
	c.configured = true
	return nil
}

// Process runs nframes/internalBlockSize internal blocks, feeding
// inputs, advancing the graph, firing listener Process hooks, and
// writing outputs. It returns false without side effects if nframes does
// not match the configured external buffer size.
func (c *AudioClient) Process(timeNanos int64, inputs, outputs [][]float32, nframes int) bool {
	if !c.configured || nframes != c.cfg.BufferSize {
		c.log.Warn(fmt.Sprintf("client: %v (got %d, want %d)", ErrBadFrameCount, nframes, c.cfg.BufferSize))
		return false
	}
	if timeNanos < c.prevTime {
		c.log.Warn("client: device clock regression")
	}

	subBlocks := nframes / c.internalBlockSize
	now := timeNanos - int64(subBlocks-1)*c.nanosPerBlock
	listeners := c.snapshotListeners()

	for sb := 0; sb < subBlocks; sb++ {
		offset := sb * c.internalBlockSize

		for ch := 0; ch < c.inputChannels && ch < len(inputs); ch++ {
			c.g.Input(ch).Feed(inputs[ch][offset : offset+c.internalBlockSize])
		}

		c.g.HandleUpdate()
		for _, l := range listeners {
			l.Process(now)
		}

		for ch := 0; ch < c.activeOutputs && ch < len(outputs); ch++ {
			out := c.g.Output(ch)
			if out.SourceCount() == 0 {
				continue // no sources feed this output; leave the caller's buffer untouched
			}
			buf := c.outScratch[ch]
			out.Render(buf, now)
			copy(outputs[ch][offset:offset+c.internalBlockSize], buf.Data())
		}

		now += c.nanosPerBlock
	}

	c.prevTime = timeNanos
	return true
}

// Shutdown marks all outputs inactive and runs every listener's Shutdown
// concurrently, off the audio thread — teardown is the one place this
// adapter does not hold to single-threaded evaluation, since no block is
// in flight once Shutdown is called. A panicking listener does not stop
// the others; every failure is merged into a single errs.List and logged
// once, not propagated.
func (c *AudioClient) Shutdown() {
	c.activeOutputs = 0

	var g errgroup.Group
	var mu sync.Mutex
	var failures errs.List
	for _, l := range c.snapshotListeners() {
		l := l
		g.Go(func() error {
			if err := c.shutdownOne(l); err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := failures.Ret(); err != nil {
		c.log.Warn(fmt.Sprintf("client: %v", err))
	}
}

func (c *AudioClient) shutdownOne(l Listener) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("client: listener shutdown panic: %v", r)
		}
	}()
	l.Shutdown()
	return nil
}
