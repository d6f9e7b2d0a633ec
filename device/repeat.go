package device

// Repeat controls how many times a background blink repeats its cycle.
type Repeat struct {
	n       int
	forever bool
}

// Forever repeats the blink cycle until it is cancelled.
var Forever = Repeat{forever: true}

// Times repeats the blink cycle exactly n times. Times(0) runs no cycles at
// all but still leaves the device off.
func Times(n int) Repeat {
	return Repeat{n: n}
}

// more reports whether iteration i (zero-based) should still run.
func (r Repeat) more(i int) bool {
	return r.forever || i < r.n
}
