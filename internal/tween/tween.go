package tween

import "time"

// Forever repeats a tween until it is cancelled.
const Forever = -1

// Tween interpolates a vector of values from From to To over Duration.
type Tween struct {
	From     []float32
	To       []float32
	Duration time.Duration
	Ease     EaseFunc

	// Yoyo plays every odd iteration backwards.
	Yoyo bool
	// Repeat is the number of extra iterations, or Forever.
	Repeat int

	// Apply receives the interpolated values. The slice is reused between calls.
	Apply func(values []float32)
	// OnComplete runs once after the final iteration has been applied.
	OnComplete func()

	elapsed time.Duration
	values  []float32
}

// advance moves the tween forward by dt, applies the current values and
// reports whether the tween has finished.
func (tw *Tween) advance(dt time.Duration) bool {
	tw.elapsed += dt

	if tw.Duration <= 0 {
		tw.apply(1)
		return true
	}

	iteration := int(tw.elapsed / tw.Duration)
	done := tw.Repeat != Forever && iteration > tw.Repeat
	if done {
		// Land exactly on the value of the last iteration's end.
		last := tw.Repeat
		if tw.Yoyo && last%2 == 1 {
			tw.apply(0)
		} else {
			tw.apply(1)
		}
		return true
	}

	progress := float64(tw.elapsed%tw.Duration) / float64(tw.Duration)
	if tw.Yoyo && iteration%2 == 1 {
		progress = 1 - progress
	}
	tw.apply(progress)
	return false
}

func (tw *Tween) apply(progress float64) {
	ease := tw.Ease
	if ease == nil {
		ease = Linear
	}
	eased := ease(progress)

	if len(tw.values) != len(tw.To) {
		tw.values = make([]float32, len(tw.To))
	}
	for i := range tw.To {
		var from float32
		if i < len(tw.From) {
			from = tw.From[i]
		}
		tw.values[i] = Lerp(from, tw.To[i], eased)
	}

	if tw.Apply != nil {
		tw.Apply(tw.values)
	}
}
