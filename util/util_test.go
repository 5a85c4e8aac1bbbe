package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMin(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(2), Min(2, 3))
	assert.Equal(uint64(2), Min(3, 2))
	assert.Equal(uint64(2), Min(2, 2))
}

func TestRoundUp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(4), RoundUp(10, 3))
	assert.Equal(uint64(3), RoundUp(9, 3), "exact division")
	assert.Equal(uint64(0), RoundUp(0, 3))
	assert.Equal(uint64(5), RoundUp(1024*4+1023, 1024))
	assert.Equal(uint64(5), RoundUp(1024*4+1, 1024), "round up by sz-1")
	assert.Equal(uint64(1), RoundUp(1, 1024))
}

func TestSumOverflows(t *testing.T) {
	assert := assert.New(t)
	assert.False(SumOverflows(0, 0))
	assert.False(SumOverflows(4096, 1<<64-4097), "sum is exactly the max")
	assert.True(SumOverflows(4096, 1<<64-4096))
	assert.True(SumOverflows(1<<64-1, 1<<64-1))
}

func TestCString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("abc", CString([]byte{'a', 'b', 'c', 0, 'x'}))
	assert.Equal("abc", CString([]byte("abc")), "no terminator")
	assert.Equal("", CString(make([]byte, 8)))
}
