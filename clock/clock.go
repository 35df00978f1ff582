// Package clock declares the minimal time source shared by the scheduler
// and the animation dependents, without either depending on the graph
// package that implements it. Kept deliberately tiny and dependency-free
// so it can sit underneath both without creating an import cycle.
package clock

// Clock reports the graph's current sample-locked time, in nanoseconds,
// derived from the sample position of the block currently being
// processed.
type Clock interface {
	NanosNow() int64
}
