package wofs

import (
	"github.com/pkg/errors"

	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/errmsg"
	"github.com/mit-pdos/go-wofs/util"
)

// Read copies up to n bytes (rounded up to whole blocks) of the file open as
// fd into p, starting at the descriptor's cursor. At most as many blocks as
// the file holds are copied, and never more than fit in p.
//
// After each block the cursor moves to the next block of the file if there
// is one; otherwise it stays on the last block. A short count is not an
// error.
func (fs *Fs) Read(fd common.Fd, p []byte, n uint64) (uint64, error) {
	f, ip, err := fs.getFd(fd)
	if err != nil {
		return 0, err
	}
	if !f.mode.CanRead() {
		return 0, errors.Wrapf(errmsg.AccessDenied, "fd %d is %v", fd, f.mode)
	}
	n = util.Min(n, uint64(len(p)))
	count := util.Min(util.RoundUp(n, common.BlockSize), ip.NBlocks())
	var off uint64
	for i := uint64(0); i < count; i++ {
		bn, ok := ip.BlockAt(f.cursor)
		if !ok {
			panic("read: cursor past end of file")
		}
		off += uint64(copy(p[off:], fs.img.Slice(fs.layout.Bnum2Addr(bn))))
		if _, ok := ip.BlockAt(f.cursor + 1); ok {
			f.cursor++
		}
	}
	util.DPrintf(10, "Read: fd %d %d blocks, %d bytes, cursor %d\n", fd, count, off, f.cursor)
	return off, nil
}

// Write appends ceil(n/BlockSize) new blocks holding the first n bytes of p
// to the file open as fd, whatever the cursor; the last block is padded
// with zeros. The cursor moves to the last block written. p must hold at
// least n bytes.
//
// Write is all-or-nothing: if the blocks cannot all be allocated and
// recorded in the file, nothing changes.
func (fs *Fs) Write(fd common.Fd, p []byte, n uint64) (uint64, error) {
	f, ip, err := fs.getFd(fd)
	if err != nil {
		return 0, err
	}
	if !f.mode.CanWrite() {
		return 0, errors.Wrapf(errmsg.ReadOnlyViolation, "fd %d is %v", fd, f.mode)
	}
	if n > uint64(len(p)) {
		return 0, errors.Wrapf(errmsg.ShortBuffer, "write of %d bytes from %d", n, len(p))
	}
	count := util.RoundUp(n, common.BlockSize)
	if count > fs.alloc.NumFree() {
		return 0, errors.Wrapf(errmsg.OutOfSpace, "write of %d blocks, %d free",
			count, fs.alloc.NumFree())
	}
	if util.SumOverflows(ip.NBlocks(), count) ||
		ip.NBlocks()+count > fs.layout.NFileBlocks {
		return 0, errors.Wrapf(errmsg.FileFull, "%v: write of %d blocks", ip, count)
	}
	bns, err := fs.alloc.AllocNums(count)
	if err != nil {
		return 0, err
	}
	for i, bn := range bns {
		start := util.Min(uint64(i)*common.BlockSize, n)
		end := util.Min(start+common.BlockSize, n)
		blk := fs.img.Slice(fs.layout.Bnum2Addr(bn))
		m := copy(blk, p[start:end])
		for j := m; j < len(blk); j++ {
			blk[j] = 0
		}
		f.cursor = ip.Append(bn)
	}
	util.DPrintf(10, "Write: fd %d %v blocks %v\n", fd, ip, bns)
	return count * common.BlockSize, nil
}
