package super

import (
	"github.com/pkg/errors"

	"github.com/mit-pdos/go-wofs/addr"
	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/disk"
	"github.com/mit-pdos/go-wofs/errmsg"
)

// Layout describes where the superblock, the inode table and the data
// region live in an image:
//
//	[ superblock | inode 0 | inode 1 | ... | block 0 | block 1 | ... | slack ]
//
// The data region takes every whole block left after the metadata.
type Layout struct {
	ImageSize   uint64
	NInode      uint64 // inode table capacity
	NFileBlocks uint64 // block list capacity of each inode
	InodeSz     uint64 // on-disk inode record size
	NBlocks     uint64 // data region capacity
}

func InodeSize(nfileblocks uint64) uint64 {
	return common.INODEHDRSZ + nfileblocks*common.BNUMSZ
}

func MkLayout(imageSize uint64, ninode uint64, nfileblocks uint64) (Layout, error) {
	l := Layout{
		ImageSize:   imageSize,
		NInode:      ninode,
		NFileBlocks: nfileblocks,
		InodeSz:     InodeSize(nfileblocks),
	}
	if imageSize == 0 || imageSize%disk.SectorSize != 0 {
		return l, errors.Wrapf(errmsg.BadConfig,
			"image size %d is not a positive multiple of %d", imageSize, disk.SectorSize)
	}
	if ninode == 0 || nfileblocks == 0 {
		return l, errors.Wrapf(errmsg.BadConfig, "empty inode table or block list")
	}
	meta := l.DataStart()
	if meta+common.BlockSize > imageSize {
		return l, errors.Wrapf(errmsg.BadConfig,
			"%d bytes of metadata leave no data blocks in %d", meta, imageSize)
	}
	l.NBlocks = (imageSize - meta) / common.BlockSize
	// block indices and counters are stored as int32
	if l.NBlocks > 1<<31-1 {
		return l, errors.Wrapf(errmsg.BadConfig, "%d blocks overflow int32", l.NBlocks)
	}
	return l, nil
}

func DefaultLayout() Layout {
	l, err := MkLayout(common.ImageSize, common.MaxFiles, common.MaxFileBlocks)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Layout) SuperAddr() addr.Addr {
	return addr.MkAddr(0, common.SUPERSZ)
}

func (l Layout) InodeStart() uint64 {
	return common.SUPERSZ
}

func (l Layout) DataStart() uint64 {
	return l.InodeStart() + l.NInode*l.InodeSz
}

func (l Layout) Inum2Addr(inum common.Inum) addr.Addr {
	if uint64(inum) >= l.NInode {
		panic("Inum2Addr")
	}
	return addr.MkAddr(l.InodeStart()+uint64(inum)*l.InodeSz, l.InodeSz)
}

func (l Layout) Bnum2Addr(bn common.Bnum) addr.Addr {
	if bn >= l.NBlocks {
		panic("Bnum2Addr")
	}
	return addr.MkAddr(l.DataStart()+bn*common.BlockSize, common.BlockSize)
}
