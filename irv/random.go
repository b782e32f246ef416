// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import "math/rand/v2"

// Picker chooses one of n items. Pick must return a value in [0, n).
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a function to the Picker interface
type PickerFunc func(n int) int

func (f PickerFunc) Pick(n int) int {
	return f(n)
}

// RandomPicker picks uniformly using the process-wide random source
type RandomPicker struct{}

func (RandomPicker) Pick(n int) int {
	return rand.IntN(n)
}

// Shuffle permutes n items in place with a Fisher-Yates pass driven by p
func Shuffle(p Picker, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := p.Pick(i + 1)
		swap(i, j)
	}
}
