package disk

import (
	"fmt"

	"github.com/pkg/errors"
	goosedisk "github.com/tchajed/goose/machine/disk"
	"golang.org/x/sys/unix"

	"github.com/mit-pdos/go-wofs/errmsg"
	"github.com/mit-pdos/go-wofs/util"
)

var _ Disk = (*fileDisk)(nil)

type fileDisk struct {
	fd        int
	numBlocks uint64
}

// NewFileDisk creates (or resizes) the file at path to hold numBlocks
// zero-filled sectors.
func NewFileDisk(path string, numBlocks uint64) (*fileDisk, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_TRUNC, 0666)
	if err != nil {
		return nil, errors.Wrapf(errmsg.IOError, "create %s: %v", path, err)
	}
	err = unix.Ftruncate(fd, int64(numBlocks*SectorSize))
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(errmsg.IOError, "truncate %s: %v", path, err)
	}
	return &fileDisk{fd, numBlocks}, nil
}

// OpenFileDisk opens an existing file holding exactly numBlocks sectors.
func OpenFileDisk(path string, numBlocks uint64) (*fileDisk, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err == unix.ENOENT {
		return nil, errors.Wrapf(errmsg.NotFound, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(errmsg.IOError, "open %s: %v", path, err)
	}
	var stat unix.Stat_t
	err = unix.Fstat(fd, &stat)
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(errmsg.IOError, "stat %s: %v", path, err)
	}
	if uint64(stat.Size) != numBlocks*SectorSize {
		unix.Close(fd)
		return nil, errors.Wrapf(errmsg.SizeMismatch, "%s has %d bytes, want %d",
			path, stat.Size, numBlocks*SectorSize)
	}
	return &fileDisk{fd, numBlocks}, nil
}

func (d *fileDisk) ReadTo(a uint64, buf Block) error {
	if uint64(len(buf)) != SectorSize {
		panic("buffer is not sector-sized")
	}
	if a >= d.numBlocks {
		panic(fmt.Errorf("out-of-bounds read at %v", a))
	}
	n, err := unix.Pread(d.fd, buf, int64(a*SectorSize))
	if err != nil {
		return errors.Wrapf(errmsg.IOError, "read sector %d: %v", a, err)
	}
	if uint64(n) != SectorSize {
		return errors.Wrapf(errmsg.IOError, "short read of sector %d (%d bytes)", a, n)
	}
	util.DPrintf(20, "read: %v\n", a)
	return nil
}

func (d *fileDisk) Read(a uint64) (Block, error) {
	buf := make([]byte, SectorSize)
	err := d.ReadTo(a, buf)
	return buf, err
}

func (d *fileDisk) Write(a uint64, v Block) error {
	if uint64(len(v)) != SectorSize {
		panic(fmt.Errorf("v is not sector-sized (%d bytes)", len(v)))
	}
	if a >= d.numBlocks {
		panic(fmt.Errorf("out-of-bounds write at %v", a))
	}
	n, err := unix.Pwrite(d.fd, v, int64(a*SectorSize))
	if err != nil {
		return errors.Wrapf(errmsg.IOError, "write sector %d: %v", a, err)
	}
	if uint64(n) != SectorSize {
		return errors.Wrapf(errmsg.IOError, "short write of sector %d (%d bytes)", a, n)
	}
	util.DPrintf(20, "write: %v\n", a)
	return nil
}

func (d *fileDisk) Size() (uint64, error) {
	return d.numBlocks, nil
}

func (d *fileDisk) Barrier() error {
	// NOTE: on macOS, this flushes to the drive but doesn't actually issue a
	// disk barrier; the correct replacement is fcntl with F_FULLFSYNC.
	err := unix.Fsync(d.fd)
	if err != nil {
		return errors.Wrapf(errmsg.IOError, "fsync: %v", err)
	}
	util.DPrintf(20, "barrier\n")
	return nil
}

func (d *fileDisk) Close() error {
	err := unix.Close(d.fd)
	if err != nil {
		return errors.Wrapf(errmsg.IOError, "close: %v", err)
	}
	return nil
}

var _ Disk = memDisk{}

// memDisk is an in-memory Disk backed by a goose memory disk.
type memDisk struct {
	d goosedisk.Disk
}

func NewMemDisk(numBlocks uint64) memDisk {
	return memDisk{d: goosedisk.NewMemDisk(numBlocks)}
}

func (d memDisk) ReadTo(a uint64, buf Block) error {
	if uint64(len(buf)) != SectorSize {
		panic("buffer is not sector-sized")
	}
	if a >= d.d.Size() {
		panic(fmt.Errorf("out-of-bounds read at %v", a))
	}
	copy(buf, d.d.Read(a))
	return nil
}

func (d memDisk) Read(a uint64) (Block, error) {
	buf := make(Block, SectorSize)
	err := d.ReadTo(a, buf)
	return buf, err
}

func (d memDisk) Write(a uint64, v Block) error {
	if uint64(len(v)) != SectorSize {
		panic(fmt.Errorf("v is not sector-sized (%d bytes)", len(v)))
	}
	if a >= d.d.Size() {
		panic(fmt.Errorf("out-of-bounds write at %v", a))
	}
	d.d.Write(a, v)
	return nil
}

func (d memDisk) Size() (uint64, error) {
	// this never changes so we assume it's safe to run lock-free
	return d.d.Size(), nil
}

func (d memDisk) Barrier() error {
	d.d.Barrier()
	return nil
}

func (d memDisk) Close() error { return nil }
