package wofs

import (
	"github.com/pkg/errors"

	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/errmsg"
	"github.com/mit-pdos/go-wofs/inode"
)

// openFile binds a descriptor slot to an inode.
type openFile struct {
	used   bool
	mode   common.Mode
	inum   common.Inum
	cursor uint64 // block list position of the next block to read
}

func (fs *Fs) freeFd() (common.Fd, bool) {
	for i := range fs.fds {
		if !fs.fds[i].used {
			return common.Fd(i), true
		}
	}
	return 0, false
}

func (fs *Fs) bindFd(fd common.Fd, inum common.Inum, mode common.Mode) {
	fs.fds[fd] = openFile{
		used:   true,
		mode:   mode,
		inum:   inum,
		cursor: 0,
	}
}

func (fs *Fs) getFd(fd common.Fd) (*openFile, *inode.Inode, error) {
	if err := fs.checkMounted(); err != nil {
		return nil, nil, err
	}
	if fd < 0 || int(fd) >= len(fs.fds) || !fs.fds[fd].used {
		return nil, nil, errors.Wrapf(errmsg.InvalidDescriptor, "fd %d", fd)
	}
	f := &fs.fds[fd]
	return f, fs.inodes[f.inum], nil
}

// Close releases fd. Nothing is written to disk.
func (fs *Fs) Close(fd common.Fd) error {
	f, _, err := fs.getFd(fd)
	if err != nil {
		return err
	}
	*f = openFile{}
	return nil
}
