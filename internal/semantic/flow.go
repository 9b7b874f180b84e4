package semantic

// Flow describes how control can leave a statement.
type Flow int

const (
	// Continues means control always reaches the next statement.
	Continues Flow = iota
	// MaybeJumps means some paths return, break or continue.
	MaybeJumps
	// Jumps means no path reaches the next statement.
	Jumps
)

func (f Flow) String() string {
	switch f {
	case Continues:
		return "continues"
	case MaybeJumps:
		return "maybe jumps"
	case Jumps:
		return "jumps"
	}
	return "unknown"
}

// sequence is the flow of two statements run one after the other.
func (f Flow) sequence(next Flow) Flow {
	if f == Jumps {
		return Jumps
	}
	if f == MaybeJumps && next != Jumps {
		return MaybeJumps
	}
	return next
}

// branch is the flow of a statement that runs exactly one of two paths.
func branch(a, b Flow) Flow {
	switch {
	case a == Jumps && b == Jumps:
		return Jumps
	case a == Continues && b == Continues:
		return Continues
	}
	return MaybeJumps
}

// loopFlow is the flow of a loop whose body has flow body. A loop that can
// exit normally never jumps as a whole; break only leaves the loop.
func loopFlow(body Flow, infinite, breaks bool) Flow {
	if infinite && !breaks {
		return Jumps
	}
	if body == Continues {
		return Continues
	}
	return MaybeJumps
}
