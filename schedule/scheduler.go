// Package schedule implements a sample-locked task executor: a
// scheduled-executor-shaped API whose notion of "now" is the graph's
// nanosecond clock rather than wall time, and whose tasks all run on the
// thread that calls Update — the audio callback thread.
//
// The intake queue accepts registrations from any thread under a
// "collect now, apply at next block" discipline: writers and Update share
// one mutex, held only long enough to append to the intake or to swap it
// out for draining.
package schedule

import (
	"container/heap"
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/dudk/graphpipe/clock"
	"github.com/dudk/graphpipe/internal/log"
)

// taskEntry is one registered unit of work, living either in the intake
// slice (not yet given an absolute fire time) or in the delay heap.
type taskEntry struct {
	id        xid.ID
	fn        func() error
	fireTime  int64
	delay     int64
	period    int64
	immediate bool
	seq       int64
	canceled  bool
}

// Handle lets a caller cancel a task it previously scheduled. Cancellation
// is observed the next time the delay structure's natural polling point
// reaches the task; an in-flight execution cannot be interrupted, since
// the executing thread is the audio thread.
type Handle struct {
	entry *taskEntry
}

// Cancel marks the task cancelled. It is safe to call from any thread.
func (h *Handle) Cancel() {
	h.entry.canceled = true
}

// ID returns the identifier of the task this Handle refers to, for
// correlating log lines with a particular registration.
func (h *Handle) ID() string { return h.entry.id.String() }

// Scheduler is a Dependent (graph.Dependent): Attach gives it the clock
// to read "now" from, Update is invoked once per block.
type Scheduler struct {
	log log.Logger

	mu     sync.Mutex
	intake []*taskEntry
	seq    int64

	clock clock.Clock
	heap  taskHeap
}

// New returns a Scheduler with no tasks and no clock; it becomes usable
// once a Graph attaches it via AddDependent.
func New(logger log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Silent
	}
	return &Scheduler{log: logger}
}

// Attach implements graph.Dependent.
func (s *Scheduler) Attach(c clock.Clock) {
	s.clock = c
}

// Detach implements graph.Dependent.
func (s *Scheduler) Detach(clock.Clock) {
	s.clock = nil
}

func (s *Scheduler) enqueue(e *taskEntry) *Handle {
	e.id = xid.New()
	s.mu.Lock()
	s.seq++
	e.seq = s.seq
	s.intake = append(s.intake, e)
	s.mu.Unlock()
	return &Handle{entry: e}
}

// Execute enqueues task to run on the next block.
func (s *Scheduler) Execute(task func() error) *Handle {
	return s.enqueue(&taskEntry{fn: task, immediate: true})
}

// Schedule enqueues task to run once, delay after the block in which it
// is drained from the intake.
func (s *Scheduler) Schedule(task func() error, delay time.Duration) *Handle {
	return s.enqueue(&taskEntry{fn: task, delay: delay.Nanoseconds()})
}

// ScheduleAtFixedRate enqueues task to run repeatedly, first after
// initialDelay, then every period, measured in fire-time increments
// rather than completion-relative delay: a run that takes longer than
// period does not push later firings later, since each reschedule adds
// period to the previous fireTime rather than to now.
func (s *Scheduler) ScheduleAtFixedRate(task func() error, initialDelay, period time.Duration) *Handle {
	return s.enqueue(&taskEntry{
		fn:    task,
		delay: initialDelay.Nanoseconds(),
		period: period.Nanoseconds(),
	})
}

// ScheduleWithFixedDelay is an alias for ScheduleAtFixedRate.
func (s *Scheduler) ScheduleWithFixedDelay(task func() error, initialDelay, period time.Duration) *Handle {
	return s.ScheduleAtFixedRate(task, initialDelay, period)
}

// Shutdown, ShutdownNow and AwaitTermination are unsupported: the host
// audio device drives termination, not this scheduler.
func (s *Scheduler) Shutdown() error                        { return ErrNotSupported }
func (s *Scheduler) ShutdownNow() error                     { return ErrNotSupported }
func (s *Scheduler) AwaitTermination(time.Duration) error   { return ErrNotSupported }
func (s *Scheduler) IsShutdown() bool                       { return false }
func (s *Scheduler) IsTerminated() bool                     { return false }

// Update implements graph.Dependent. It drains the intake FIFO — running
// immediate tasks now and moving delayed tasks into the delay heap with
// their absolute fire time set — then runs every heap entry whose fire
// time has arrived, in fire-time order with insertion order breaking
// ties.
func (s *Scheduler) Update() {
	now := s.clock.NanosNow()

	s.mu.Lock()
	drained := s.intake
	s.intake = nil
	s.mu.Unlock()

	for _, e := range drained {
		if e.canceled {
			continue
		}
		if e.immediate {
			s.run(e, now)
			continue
		}
		e.fireTime = now + e.delay
		heap.Push(&s.heap, e)
	}

	for s.heap.Len() > 0 {
		top := s.heap[0]
		if top.canceled {
			heap.Pop(&s.heap)
			continue
		}
		if top.fireTime > now {
			break
		}
		heap.Pop(&s.heap)
		ok := s.run(top, now)
		if top.period > 0 && ok && !top.canceled {
			top.fireTime += top.period
			heap.Push(&s.heap, top)
		}
	}
}

func (s *Scheduler) run(e *taskEntry, now int64) bool {
	if err := e.fn(); err != nil {
		s.log.Warn(fmt.Sprintf("schedule: task %s at %d failed: %v", e.id, now, err))
		return false
	}
	return true
}
