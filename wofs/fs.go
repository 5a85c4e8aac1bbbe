package wofs

import (
	"github.com/google/uuid"
	"github.com/nnsgmsone/damrey/logger"
	"github.com/pkg/errors"

	"github.com/mit-pdos/go-wofs/alloc"
	"github.com/mit-pdos/go-wofs/buf"
	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/disk"
	"github.com/mit-pdos/go-wofs/errmsg"
	"github.com/mit-pdos/go-wofs/inode"
	"github.com/mit-pdos/go-wofs/super"
	"github.com/mit-pdos/go-wofs/util"
)

// MkImage creates a zero-filled image file of cfg.ImageSize bytes. The first
// Mount of it formats it.
func MkImage(path string, cfg Config) error {
	l, err := cfg.layout()
	if err != nil {
		return err
	}
	d, err := disk.NewFileDisk(path, l.ImageSize/disk.SectorSize)
	if err != nil {
		return err
	}
	return d.Close()
}

// Mount loads the image file at path, which must be exactly cfg.ImageSize
// bytes. The file stays open until Unmount.
func Mount(path string, cfg Config) (*Fs, error) {
	l, err := cfg.layout()
	if err != nil {
		return nil, err
	}
	d, err := disk.OpenFileDisk(path, l.ImageSize/disk.SectorSize)
	if err != nil {
		return nil, err
	}
	fs, err := mount(d, l, cfg)
	if err != nil {
		d.Close()
		return nil, errors.Wrapf(err, "mount %s", path)
	}
	util.DPrintf(1, "Mount: %s as %v\n", path, fs.id)
	return fs, nil
}

// MountDisk loads the image held by d. Unmount writes it back to d and
// closes d.
func MountDisk(d disk.Disk, cfg Config) (*Fs, error) {
	l, err := cfg.layout()
	if err != nil {
		return nil, err
	}
	sz, err := d.Size()
	if err != nil {
		return nil, err
	}
	if sz*disk.SectorSize != l.ImageSize {
		return nil, errors.Wrapf(errmsg.SizeMismatch, "disk has %d bytes, want %d",
			sz*disk.SectorSize, l.ImageSize)
	}
	return mount(d, l, cfg)
}

func mount(d disk.Disk, l super.Layout, cfg Config) (*Fs, error) {
	w := cfg.LogWriter
	if w == nil {
		w = DefaultConfig().LogWriter
	}
	log := logger.New(w, "wofs")
	log.SetLevel(logger.ERROR)
	fs := &Fs{
		id:     uuid.New(),
		log:    log,
		d:      d,
		img:    buf.MkImage(l.ImageSize),
		layout: l,
		inodes: make([]*inode.Inode, l.NInode),
		fds:    make([]openFile, common.MaxOpenFiles),
	}
	if err := fs.img.Load(d); err != nil {
		fs.log.Errorf("%v: load image: %v\n", fs.id, err)
		return nil, err
	}
	fs.sb = super.Decode(fs.img.Slice(l.SuperAddr()))
	if fs.sb.Formatted() {
		if err := fs.sb.Check(l); err != nil {
			fs.log.Errorf("%v: superblock: %v\n", fs.id, err)
			return nil, err
		}
		if err := fs.loadInodes(); err != nil {
			fs.log.Errorf("%v: inode table: %v\n", fs.id, err)
			return nil, err
		}
	} else {
		fs.mkfs()
	}
	fs.alloc = alloc.MkAlloc(fs.sb)
	fs.mounted = true
	util.DPrintf(1, "mount %v: %d blocks, %d free, %d used\n", fs.id,
		fs.sb.Size, fs.sb.FreeBlocks, fs.sb.UsedBlocks)
	return fs, nil
}

func (fs *Fs) loadInodes() error {
	owner := make(map[common.Bnum]string)
	for i := range fs.inodes {
		inum := common.Inum(i)
		ip, err := inode.Decode(fs.img.Slice(fs.layout.Inum2Addr(inum)),
			fs.layout.NFileBlocks)
		if err != nil {
			return err
		}
		for _, bn := range ip.Blocks {
			if bn >= fs.sb.UsedBlocks {
				return errors.Wrapf(errmsg.Corrupt, "%v owns unallocated block %d", ip, bn)
			}
			if o, ok := owner[bn]; ok {
				return errors.Wrapf(errmsg.Corrupt, "block %d owned by %q and %q",
					bn, o, ip.Name)
			}
			owner[bn] = ip.Name
		}
		fs.inodes[i] = ip
	}
	return nil
}

// mkfs formats an image that does not carry the format tag: all data blocks
// free and every inode slot unused.
func (fs *Fs) mkfs() {
	util.DPrintf(1, "mkfs %v: %d data blocks\n", fs.id, fs.layout.NBlocks)
	fs.sb.MkFs(fs.layout.NBlocks)
	for i := range fs.inodes {
		fs.inodes[i] = inode.MkNullInode()
		fs.img.Zero(fs.layout.Inum2Addr(common.Inum(i)))
	}
	fs.img.Install(fs.layout.SuperAddr(), fs.sb.Encode())
}

// sync encodes the in-memory metadata into the image.
func (fs *Fs) sync() {
	fs.img.Install(fs.layout.SuperAddr(), fs.sb.Encode())
	for i, ip := range fs.inodes {
		a := fs.layout.Inum2Addr(common.Inum(i))
		if ip.Used() {
			fs.img.Install(a, ip.Encode(fs.layout.NFileBlocks))
		} else {
			fs.img.Zero(a)
		}
	}
}

// Unmount writes the whole image back to the disk and closes it. Open
// descriptors are discarded. If writing fails the file system stays
// mounted.
func (fs *Fs) Unmount() error {
	if err := fs.checkMounted(); err != nil {
		return err
	}
	fs.sync()
	if err := fs.img.Flush(fs.d); err != nil {
		fs.log.Errorf("%v: flush image: %v\n", fs.id, err)
		return err
	}
	// the image is on disk from here on
	fs.mounted = false
	for i := range fs.fds {
		fs.fds[i] = openFile{}
	}
	if err := fs.d.Close(); err != nil {
		fs.log.Errorf("%v: close disk: %v\n", fs.id, err)
		return err
	}
	util.DPrintf(1, "Unmount %v\n", fs.id)
	return nil
}

func (fs *Fs) checkMounted() error {
	if !fs.mounted {
		return errmsg.NotMounted
	}
	return nil
}
