package store

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ulidEntropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	ulidEntropyMu sync.Mutex
)

func NewID() string {
	ulidEntropyMu.Lock()
	defer ulidEntropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// codeAlphabet skips 0/O/1/I so join codes survive being read out loud.
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

var (
	codeRand   = rand.New(rand.NewSource(time.Now().UnixNano() + 1))
	codeRandMu sync.Mutex
)

// NewJoinCode returns a 6-character session join code.
func NewJoinCode() string {
	codeRandMu.Lock()
	defer codeRandMu.Unlock()
	b := make([]byte, 6)
	for i := range b {
		b[i] = codeAlphabet[codeRand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
