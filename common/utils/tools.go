package utils

import (
	"math/rand"
)

func Contains[T int | string](data []T, value T) bool {
	for _, v := range data {
		if v == value {
			return true
		}
	}
	return false
}

func Rand(n int) int {
	return rand.Intn(n)
}

// Shuffle Fisher-Yates 洗牌
func Shuffle[T any](data []T) {
	for i := len(data) - 1; i > 0; i-- {
		j := Rand(i + 1)
		data[i], data[j] = data[j], data[i]
	}
}
