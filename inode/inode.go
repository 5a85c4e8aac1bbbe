package inode

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tchajed/marshal"

	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/errmsg"
	"github.com/mit-pdos/go-wofs/util"
)

// Inode is the metadata of one file. An inode with an empty name is an
// unused table slot.
//
// Blocks holds exactly NBlocks() indices, in append order; the on-disk list
// is padded to the layout's capacity with -1.
type Inode struct {
	Name   string
	Id     uint64 // creation order
	Blocks []common.Bnum
}

func MkInode(name string, id uint64) *Inode {
	return &Inode{Name: name, Id: id}
}

func MkNullInode() *Inode {
	return &Inode{}
}

func (ip *Inode) Used() bool {
	return ip.Name != ""
}

func (ip *Inode) NBlocks() uint64 {
	return uint64(len(ip.Blocks))
}

// LastOff is the list position of the most recently appended block.
func (ip *Inode) LastOff() common.OptBnum {
	if len(ip.Blocks) == 0 {
		return common.NULLBNUM
	}
	return common.SomeBnum(ip.NBlocks() - 1)
}

// BlockAt returns the block at list position off, if the file has one.
func (ip *Inode) BlockAt(off uint64) (common.Bnum, bool) {
	if off >= ip.NBlocks() {
		return 0, false
	}
	return ip.Blocks[off], true
}

// Append adds bn at the next list position and returns that position.
// The caller checks capacity.
func (ip *Inode) Append(bn common.Bnum) uint64 {
	ip.Blocks = append(ip.Blocks, bn)
	return ip.NBlocks() - 1
}

func (ip *Inode) String() string {
	return fmt.Sprintf("inode %d %q [%d blocks]", ip.Id, ip.Name, ip.NBlocks())
}

// Encode produces the on-disk record of an inode whose block list holds at
// most nfileblocks entries.
func (ip *Inode) Encode(nfileblocks uint64) []byte {
	if ip.NBlocks() > nfileblocks {
		panic("inode block list overflow")
	}
	if uint64(len(ip.Name)) > common.MaxNameLen {
		panic("inode name too long")
	}
	enc := marshal.NewEnc(common.INODEHDRSZ - common.NAMESZ + nfileblocks*common.BNUMSZ)
	enc.PutInt32(uint32(ip.NBlocks()))
	enc.PutInt32(uint32(ip.Id))
	if off := ip.LastOff(); off.Valid {
		enc.PutInt32(uint32(off.Bnum))
	} else {
		enc.PutInt32(common.NULLDISK)
	}
	for i := uint64(0); i < nfileblocks; i++ {
		if bn, ok := ip.BlockAt(i); ok {
			enc.PutInt32(uint32(bn))
		} else {
			enc.PutInt32(common.NULLDISK)
		}
	}
	b := make([]byte, common.NAMESZ, common.INODEHDRSZ+nfileblocks*common.BNUMSZ)
	copy(b, ip.Name)
	return append(b, enc.Finish()...)
}

// Decode parses an on-disk inode record. Unused slots decode to a null
// inode whatever the rest of the record holds.
func Decode(b []byte, nfileblocks uint64) (*Inode, error) {
	ip := MkNullInode()
	ip.Name = util.CString(b[:common.NAMESZ])
	if !ip.Used() {
		return ip, nil
	}
	dec := marshal.NewDec(b[common.NAMESZ:])
	n := uint64(dec.GetInt32())
	ip.Id = uint64(dec.GetInt32())
	last := int32(dec.GetInt32())
	if n > nfileblocks || int64(last) != int64(n)-1 {
		return nil, errors.Wrapf(errmsg.Corrupt, "inode %q: %d blocks, last offset %d",
			ip.Name, n, last)
	}
	ip.Blocks = make([]common.Bnum, 0, n)
	for i := uint64(0); i < nfileblocks; i++ {
		v := int32(dec.GetInt32())
		if i < n {
			if v < 0 {
				return nil, errors.Wrapf(errmsg.Corrupt, "inode %q: hole at %d", ip.Name, i)
			}
			ip.Blocks = append(ip.Blocks, common.Bnum(v))
		} else if v >= 0 {
			return nil, errors.Wrapf(errmsg.Corrupt, "inode %q: block past end at %d", ip.Name, i)
		}
	}
	return ip, nil
}
