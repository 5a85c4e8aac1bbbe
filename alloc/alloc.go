package alloc

import (
	"github.com/pkg/errors"

	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/errmsg"
	"github.com/mit-pdos/go-wofs/super"
	"github.com/mit-pdos/go-wofs/util"
)

// Alloc hands out data region blocks in increasing order, starting from the
// block after the superblock's last allocated one. Blocks are never freed,
// so no index is ever issued twice.
//
// Alloc keeps no state of its own; the counters live in the superblock so
// that they are persisted with it.
type Alloc struct {
	sb *super.Superblock
}

func MkAlloc(sb *super.Superblock) *Alloc {
	return &Alloc{sb: sb}
}

func (a *Alloc) NumFree() uint64 {
	return a.sb.FreeBlocks
}

func (a *Alloc) NumUsed() uint64 {
	return a.sb.UsedBlocks
}

func (a *Alloc) next() common.Bnum {
	if a.sb.LastAlloc.Valid {
		return a.sb.LastAlloc.Bnum + 1
	}
	return 0
}

// AllocNums issues n consecutive block numbers, or none if fewer than n are
// free.
func (a *Alloc) AllocNums(n uint64) ([]common.Bnum, error) {
	if n > a.sb.FreeBlocks {
		return nil, errors.Wrapf(errmsg.OutOfSpace, "want %d blocks, %d free",
			n, a.sb.FreeBlocks)
	}
	bns := make([]common.Bnum, n)
	start := a.next()
	for i := range bns {
		bns[i] = start + common.Bnum(i)
	}
	if n > 0 {
		a.sb.FreeBlocks -= n
		a.sb.UsedBlocks += n
		a.sb.LastAlloc = common.SomeBnum(bns[n-1])
	}
	util.DPrintf(10, "AllocNums: %d from %d, free %d\n", n, start, a.sb.FreeBlocks)
	return bns, nil
}

// AllocNum issues a single block number.
func (a *Alloc) AllocNum() (common.Bnum, error) {
	bns, err := a.AllocNums(1)
	if err != nil {
		return 0, err
	}
	return bns[0], nil
}
