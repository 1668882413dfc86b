package core

import "time"

// Terminal size assumed when a host cannot measure it.
const (
	DefaultScreenW = 80
	DefaultScreenH = 24
)

// ResolveSeed returns seed, or a time-based one when it is zero.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
