package addr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddr(t *testing.T) {
	assert := assert.New(t)
	a := MkAddr(10, 20)
	assert.Equal(uint64(30), a.End())
	assert.Equal(uint64(10), MkAddr(10, 0).End(), "empty object")
}

func TestOverlaps(t *testing.T) {
	assert := assert.New(t)
	a := MkAddr(0, 10)
	assert.True(a.Overlaps(MkAddr(9, 1)))
	assert.False(a.Overlaps(MkAddr(10, 1)), "adjacent objects do not overlap")
	assert.True(MkAddr(5, 100).Overlaps(a))
}
