package utils

import "time"

func Default[T int | int64 | string | time.Duration](v, d T) T {
	if !isZero(v) {
		return v
	}
	return d
}

func isZero[T comparable](v T) bool {
	var zero T
	return v == zero
}
