package port

import "time"

// RandomSource yields uniformly distributed values in [0,1).
type RandomSource interface {
	Float64() float64
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
