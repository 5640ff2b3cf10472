// Copyright © 2019 Shunsuke Tonogai

package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	a := Bytes(64)
	b := Bytes(64)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestLetterString(t *testing.T) {
	s := LetterString(32)
	assert.Len(t, s, 32)
	for _, r := range s {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "unexpected rune %q", r)
	}
}
