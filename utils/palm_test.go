package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalmDigest(t *testing.T) {
	sample := NewPalmSample()
	assert.NotEqual(t, sample, NewPalmSample())
	assert.Len(t, PalmDigest(sample), 64)
	assert.Equal(t, PalmDigest(sample), PalmDigest(" "+sample+" "))
	assert.NotEqual(t, PalmDigest(sample), PalmDigest(NewPalmSample()))
}
