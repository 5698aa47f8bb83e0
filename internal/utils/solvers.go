package utils

import "math"

// BinarySearch narrows [falseDom, trueDom] until it is at most eps wide and returns the
// bracket. condition must be false at falseDom and true at trueDom.
func BinarySearch(condition func(float64) bool, falseDom, trueDom, eps float64) (float64, float64) {
	for math.Abs(trueDom-falseDom) > eps {
		c := (falseDom + trueDom) * 0.5
		if condition(c) {
			trueDom = c
		} else {
			falseDom = c
		}
	}
	return falseDom, trueDom
}
