package pipe

// AddSource performs a cross-registration: first src is asked to accept
// this Node as a sink (failing with ErrSinkFull/ErrDuplicate/ErrNullArg),
// then this Node accepts src as a source under the same rules. If the
// second step fails, the first is undone so this Node is never left
// partially connected.
func (b *base) AddSource(src Node) error {
	if src == nil {
		return ErrNullArg
	}
	if err := src.registerSink(b.self); err != nil {
		return err
	}
	if err := b.appendSource(src); err != nil {
		src.unregisterSink(b.self)
		return err
	}
	return nil
}

// RemoveSource disconnects src from both sides. Removing a source that is
// not currently connected is tolerated as a no-op on whichever side has
// no record of the connection.
func (b *base) RemoveSource(src Node) error {
	if src == nil {
		return nil
	}
	b.dropSource(src)
	src.unregisterSink(b.self)
	return nil
}

func (b *base) appendSource(src Node) error {
	if len(b.sources) >= b.sourceCapacity {
		return ErrSourceFull
	}
	for _, s := range b.sources {
		if s == src {
			return ErrDuplicate
		}
	}
	b.sources = append(b.sources, src)
	return nil
}

func (b *base) dropSource(src Node) {
	for i, s := range b.sources {
		if s == src {
			b.sources = append(b.sources[:i], b.sources[i+1:]...)
			return
		}
	}
}

func (b *base) registerSink(n Node) error {
	if n == nil {
		return ErrNullArg
	}
	for _, s := range b.sinks {
		if s == n {
			return ErrDuplicate
		}
	}
	if len(b.sinks) >= b.sinkCapacity {
		return ErrSinkFull
	}
	b.sinks = append(b.sinks, n)
	return nil
}

func (b *base) unregisterSink(n Node) {
	for i, s := range b.sinks {
		if s == n {
			b.sinks = append(b.sinks[:i], b.sinks[i+1:]...)
			return
		}
	}
}

// SourceCapacity returns the immutable maximum number of sources.
func (b *base) SourceCapacity() int { return b.sourceCapacity }

// SinkCapacity returns the immutable maximum number of sinks.
func (b *base) SinkCapacity() int { return b.sinkCapacity }

// SourceCount returns the number of currently connected sources.
func (b *base) SourceCount() int { return len(b.sources) }

// SinkCount returns the number of currently connected sinks.
func (b *base) SinkCount() int { return len(b.sinks) }

// SourceAt returns the source connected at index i.
func (b *base) SourceAt(i int) (Node, error) {
	if i < 0 || i >= len(b.sources) {
		return nil, ErrIndexOutOfRange
	}
	return b.sources[i], nil
}

// SinkAt returns the sink connected at index i.
func (b *base) SinkAt(i int) (Node, error) {
	if i < 0 || i >= len(b.sinks) {
		return nil, ErrIndexOutOfRange
	}
	return b.sinks[i], nil
}
