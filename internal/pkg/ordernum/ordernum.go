package ordernum

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	suffixLen      = 6
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Generate builds a merchant order number of the form
// PREFIX + yyyymmdd + hhmmss + millisecond + random suffix.
// Uniqueness is practical, not guaranteed: the gateway rejects duplicates,
// and a collision requires two calls in the same millisecond drawing the
// same six-character suffix.
func Generate(prefix string) string {
	now := time.Now()
	return fmt.Sprintf("%s%s%03d%s", prefix, now.Format("20060102150405"), now.Nanosecond()/1e6, suffix())
}

func suffix() string {
	rngMu.Lock()
	defer rngMu.Unlock()
	buf := make([]byte, suffixLen)
	for i := range buf {
		buf[i] = suffixAlphabet[rng.Intn(len(suffixAlphabet))]
	}
	return string(buf)
}
