// Copyright © 2019 Shunsuke Tonogai

// Package rand generates random payloads for tests.
package rand

import (
	"math/rand"
	"sync"
	"time"
)

var (
	once sync.Once
	mu   sync.Mutex
	rgen *rand.Rand
)

func gen() *rand.Rand {
	once.Do(func() {
		rgen = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec
	})
	return rgen
}

// Bytes returns a random slice of bytes
func Bytes(n int) []byte {
	mu.Lock()
	defer mu.Unlock()
	b := make([]byte, n)
	_, _ = gen().Read(b)
	return b
}

// LetterString returns a random string picked in the [0-9]|[a-z] range
func LetterString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	mu.Lock()
	defer mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[gen().Intn(len(letters))]
	}
	return string(b)
}
