// Package animate implements the Property/Animator and tempo Trigger
// dependents: both are graph.Dependent implementations. A Property's
// Animator advances exactly once per block, during the graph's dependent
// update pass, before user code sees the block; a direct Set takes effect
// and notifies linked consumers immediately.
package animate

import "github.com/dudk/graphpipe/clock"

// Property is a scalar value with an optional keyframe Animator. It must
// be registered with a graph via AddDependent before its animator will
// advance; Set and Link work regardless.
type Property struct {
	clock     clock.Clock
	value     float64
	listeners []func(float64)
	anim      *Animator
}

// NewProperty returns a Property holding initial.
func NewProperty(initial float64) *Property {
	return &Property{value: initial}
}

// Value returns the property's current value.
func (p *Property) Value() float64 { return p.value }

// Set cancels any active animation and assigns v directly, notifying
// every linked consumer.
func (p *Property) Set(v float64) {
	if p.anim != nil {
		p.anim.cancel()
	}
	p.value = v
	p.notify()
}

// Link registers consumer to be called on every change to the property's
// value, and calls it once immediately with the current value.
func (p *Property) Link(consumer func(float64)) {
	p.listeners = append(p.listeners, consumer)
	consumer(p.value)
}

func (p *Property) notify() {
	for _, l := range p.listeners {
		l(p.value)
	}
}

// Animator lazily constructs and returns this property's Animator.
// Calling Animator twice returns the same instance, so a previously
// configured but not yet started animation is not lost.
func (p *Property) Animator() *Animator {
	if p.anim == nil {
		p.anim = &Animator{prop: p}
	}
	return p.anim
}

// Attach implements graph.Dependent.
func (p *Property) Attach(c clock.Clock) { p.clock = c }

// Detach implements graph.Dependent.
func (p *Property) Detach(clock.Clock) { p.clock = nil }

// Update implements graph.Dependent: it advances the active animation, if
// any, by one block.
func (p *Property) Update() {
	if p.anim != nil && p.anim.active && p.clock != nil {
		p.anim.step(p.clock.NanosNow())
	}
}
