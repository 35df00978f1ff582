package animate

import "time"

// Animator drives its owning Property through a sequence of segments:
// to[i] is segment i's target value, in[] and easing[] are cycled modulo
// their own length across segments (so a 4-segment animation can share a
// 1-entry easing vector). Segment duration is measured against the
// graph's nanosecond clock, not wall time.
type Animator struct {
	prop *Property

	to     []float64
	in     []float64
	easing []Easing

	seg      int
	segStart int64
	segFrom  float64
	active   bool

	onDone func(overrun time.Duration)
}

// OnDone registers a consumer invoked when the last segment completes,
// passed the overrun (how far past the segment's nominal end the clock
// had already advanced) so the consumer can re-arm another animation
// without drift.
func (a *Animator) OnDone(f func(overrun time.Duration)) *Animator {
	a.onDone = f
	return a
}

// Start begins (or restarts) the animation: to[i] is the i'th segment's
// target, in[] holds per-segment durations in seconds cycled modulo its
// length, easing[] holds per-segment easing functions cycled likewise. A
// nil or zero-value easing entry behaves as Linear.
func (a *Animator) Start(to, in []float64, easing []Easing) *Animator {
	a.to, a.in, a.easing = to, in, easing
	a.seg = 0
	a.segFrom = a.prop.value
	a.active = len(to) > 0 && len(in) > 0
	if a.prop.clock != nil {
		a.segStart = a.prop.clock.NanosNow()
	}
	return a
}

// Active reports whether the animation is still running.
func (a *Animator) Active() bool { return a.active }

func (a *Animator) cancel() { a.active = false }

func (a *Animator) segDuration(seg int) float64 { return a.in[seg%len(a.in)] }

func (a *Animator) segTarget(seg int) float64 { return a.to[seg%len(a.to)] }

func (a *Animator) segEasing(seg int) Easing {
	if len(a.easing) == 0 {
		return Linear
	}
	if e := a.easing[seg%len(a.easing)]; e != nil {
		return e
	}
	return Linear
}

// step advances the animation to now, the graph's current nanosecond
// time. It may cross several segment boundaries in one call if a
// segment's duration is shorter than a block.
func (a *Animator) step(now int64) {
	numSegments := len(a.to)
	for a.active {
		durNanos := int64(a.segDuration(a.seg) * 1e9)
		elapsed := now - a.segStart
		if durNanos <= 0 || elapsed < durNanos {
			break
		}

		overrun := elapsed - durNanos
		a.segFrom = a.segTarget(a.seg)
		a.prop.value = a.segFrom
		a.prop.notify()

		a.seg++
		if a.seg >= numSegments {
			a.active = false
			if a.onDone != nil {
				a.onDone(time.Duration(overrun))
			}
			return
		}
		a.segStart = now - overrun
	}
	if !a.active {
		return
	}

	durNanos := int64(a.segDuration(a.seg) * 1e9)
	elapsed := now - a.segStart
	proportion := float64(elapsed) / float64(durNanos)
	eased := a.segEasing(a.seg)(proportion)
	target := a.segTarget(a.seg)

	a.prop.value = a.segFrom + (target-a.segFrom)*eased
	a.prop.notify()
}
