package super

import (
	"github.com/pkg/errors"
	"github.com/tchajed/marshal"

	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/errmsg"
)

// FormatTag marks an image whose superblock and inode table are valid.
var FormatTag = [common.FORMATSZ]byte{'f', 'o', 'r', 'm', 'a', 't'}

// Superblock holds the global allocation counters.
//
// FreeBlocks + UsedBlocks == Size at all times.
type Superblock struct {
	Size       uint64 // data region capacity, in blocks
	FreeBlocks uint64
	UsedBlocks uint64
	LastAlloc  common.OptBnum // most recently allocated block
	Format     [common.FORMATSZ]byte
}

func putBnum(enc marshal.Enc, bn common.OptBnum) {
	if bn.Valid {
		enc.PutInt32(uint32(int32(bn.Bnum)))
	} else {
		enc.PutInt32(common.NULLDISK)
	}
}

func getBnum(dec marshal.Dec) common.OptBnum {
	v := int32(dec.GetInt32())
	if v < 0 {
		return common.NULLBNUM
	}
	return common.SomeBnum(common.Bnum(v))
}

func (sb *Superblock) Encode() []byte {
	enc := marshal.NewEnc(common.SUPERSZ)
	enc.PutInt32(uint32(sb.Size))
	enc.PutInt32(uint32(sb.FreeBlocks))
	enc.PutInt32(uint32(sb.UsedBlocks))
	putBnum(enc, sb.LastAlloc)
	b := enc.Finish()
	copy(b[common.SUPERSZ-common.FORMATSZ:], sb.Format[:])
	return b
}

func Decode(b []byte) *Superblock {
	sb := &Superblock{}
	dec := marshal.NewDec(b[:common.SUPERSZ])
	sb.Size = uint64(dec.GetInt32())
	sb.FreeBlocks = uint64(dec.GetInt32())
	sb.UsedBlocks = uint64(dec.GetInt32())
	sb.LastAlloc = getBnum(dec)
	copy(sb.Format[:], b[common.SUPERSZ-common.FORMATSZ:common.SUPERSZ])
	return sb
}

func (sb *Superblock) Formatted() bool {
	return sb.Format == FormatTag
}

// MkFs resets the counters for an empty data region of nblocks blocks and
// stamps the format tag.
func (sb *Superblock) MkFs(nblocks uint64) {
	sb.Size = nblocks
	sb.FreeBlocks = nblocks
	sb.UsedBlocks = 0
	sb.LastAlloc = common.NULLBNUM
	sb.Format = FormatTag
}

// Check validates a persisted superblock against the layout it is mounted
// with.
func (sb *Superblock) Check(l Layout) error {
	if sb.Size != l.NBlocks {
		return errors.Wrapf(errmsg.Corrupt,
			"superblock has %d blocks, layout has %d", sb.Size, l.NBlocks)
	}
	if sb.FreeBlocks+sb.UsedBlocks != sb.Size {
		return errors.Wrapf(errmsg.Corrupt, "free %d + used %d != size %d",
			sb.FreeBlocks, sb.UsedBlocks, sb.Size)
	}
	// allocation is monotonic from block 0
	if sb.UsedBlocks == 0 && sb.LastAlloc.Valid ||
		sb.UsedBlocks > 0 && sb.LastAlloc != common.SomeBnum(sb.UsedBlocks-1) {
		return errors.Wrapf(errmsg.Corrupt, "last allocated %v with %d used",
			sb.LastAlloc, sb.UsedBlocks)
	}
	return nil
}
