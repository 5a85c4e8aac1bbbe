package inode

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/errmsg"
)

const nfileblocks uint64 = 16

func recordSize() int {
	return int(common.INODEHDRSZ + nfileblocks*common.BNUMSZ)
}

func TestAppend(t *testing.T) {
	assert := assert.New(t)
	ip := MkInode("a", 3)
	assert.True(ip.Used())
	assert.Equal(common.NULLBNUM, ip.LastOff())
	_, ok := ip.BlockAt(0)
	assert.False(ok)

	assert.Equal(uint64(0), ip.Append(10))
	assert.Equal(uint64(1), ip.Append(11))
	assert.Equal(uint64(2), ip.NBlocks())
	assert.Equal(common.SomeBnum(1), ip.LastOff())
	bn, ok := ip.BlockAt(1)
	assert.True(ok)
	assert.Equal(common.Bnum(11), bn)
	_, ok = ip.BlockAt(2)
	assert.False(ok)
}

func TestEncodeLayout(t *testing.T) {
	assert := assert.New(t)
	ip := MkInode("hello", 4)
	ip.Append(7)
	b := ip.Encode(nfileblocks)
	require.Equal(t, recordSize(), len(b))

	assert.Equal("hello", string(b[:5]))
	assert.Equal(byte(0), b[5], "name is NUL-terminated")
	le := binary.LittleEndian
	hdr := common.NAMESZ
	assert.Equal(uint32(1), le.Uint32(b[hdr:]), "block count")
	assert.Equal(uint32(4), le.Uint32(b[hdr+4:]), "id")
	assert.Equal(uint32(0), le.Uint32(b[hdr+8:]), "last list offset")
	assert.Equal(uint32(7), le.Uint32(b[hdr+12:]))
	assert.Equal(uint32(0xffffffff), le.Uint32(b[hdr+16:]), "unused entries are -1")
}

func TestEncodeDecode(t *testing.T) {
	ip := MkInode(strings.Repeat("x", int(common.MaxNameLen)), 9)
	for i := uint64(0); i < nfileblocks; i++ {
		ip.Append(100 + i)
	}
	ip2, err := Decode(ip.Encode(nfileblocks), nfileblocks)
	require.NoError(t, err)
	assert.Equal(t, ip, ip2)

	empty := MkInode("e", 0)
	ip2, err = Decode(empty.Encode(nfileblocks), nfileblocks)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), ip2.NBlocks())
	assert.Equal(t, "e", ip2.Name)
}

func TestDecodeNull(t *testing.T) {
	b := make([]byte, recordSize())
	b[common.NAMESZ] = 0xAA // garbage after an empty name is ignored
	ip, err := Decode(b, nfileblocks)
	require.NoError(t, err)
	assert.False(t, ip.Used())
}

func TestDecodeCorrupt(t *testing.T) {
	ip := MkInode("c", 0)
	ip.Append(1)
	ip.Append(2)
	b := ip.Encode(nfileblocks)
	le := binary.LittleEndian
	hdr := common.NAMESZ

	hole := append([]byte(nil), b...)
	le.PutUint32(hole[hdr+12+4:], 0xffffffff)
	_, err := Decode(hole, nfileblocks)
	assert.True(t, errors.Is(err, errmsg.Corrupt), "hole in block list")

	count := append([]byte(nil), b...)
	le.PutUint32(count[hdr:], uint32(nfileblocks+1))
	_, err = Decode(count, nfileblocks)
	assert.True(t, errors.Is(err, errmsg.Corrupt), "count past capacity")

	tail := append([]byte(nil), b...)
	le.PutUint32(tail[hdr+12+8:], 5)
	_, err = Decode(tail, nfileblocks)
	assert.True(t, errors.Is(err, errmsg.Corrupt), "block past end")
}

func TestEncodeOverflowPanics(t *testing.T) {
	ip := MkInode("big", 0)
	for i := uint64(0); i <= nfileblocks; i++ {
		ip.Append(i)
	}
	assert.Panics(t, func() { ip.Encode(nfileblocks) })
}
