package wofs

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/errmsg"
	"github.com/mit-pdos/go-wofs/inode"
	"github.com/mit-pdos/go-wofs/util"
)

func checkName(name string) error {
	if uint64(len(name)) > common.MaxNameLen {
		return errors.Wrapf(errmsg.NameTooLong, "%d bytes", len(name))
	}
	if name == "" || strings.IndexByte(name, 0) >= 0 {
		return errors.Wrapf(errmsg.InvalidName, "%q", name)
	}
	return nil
}

func checkMode(mode common.Mode) error {
	if !mode.Valid() {
		return errors.Wrapf(errmsg.InvalidMode, "%d", mode)
	}
	return nil
}

func (fs *Fs) lookup(name string) (common.Inum, bool) {
	for i, ip := range fs.inodes {
		if ip.Used() && ip.Name == name {
			return common.Inum(i), true
		}
	}
	return 0, false
}

func (fs *Fs) freeInode() (common.Inum, bool) {
	for i, ip := range fs.inodes {
		if !ip.Used() {
			return common.Inum(i), true
		}
	}
	return 0, false
}

// Create makes a new, empty file and opens it with mode.
//
// Every check happens before the inode table is touched, so a failed Create
// leaves no trace.
func (fs *Fs) Create(name string, mode common.Mode) (common.Fd, error) {
	if err := fs.checkMounted(); err != nil {
		return 0, err
	}
	if err := checkName(name); err != nil {
		return 0, err
	}
	if err := checkMode(mode); err != nil {
		return 0, err
	}
	if _, ok := fs.lookup(name); ok {
		return 0, errors.Wrapf(errmsg.AlreadyExists, "%q", name)
	}
	inum, ok := fs.freeInode()
	if !ok {
		return 0, errors.Wrapf(errmsg.NoInodeSlots, "create %q", name)
	}
	fd, ok := fs.freeFd()
	if !ok {
		return 0, errors.Wrapf(errmsg.NoDescriptorSlots, "create %q", name)
	}
	// slots fill in order and are never freed, so the slot is the
	// creation order
	fs.inodes[inum] = inode.MkInode(name, uint64(inum))
	fs.bindFd(fd, inum, mode)
	util.DPrintf(5, "Create: %v fd %d %v\n", fs.inodes[inum], fd, mode)
	return fd, nil
}

// Open opens an existing file with mode.
func (fs *Fs) Open(name string, mode common.Mode) (common.Fd, error) {
	if err := fs.checkMounted(); err != nil {
		return 0, err
	}
	if err := checkMode(mode); err != nil {
		return 0, err
	}
	inum, ok := fs.lookup(name)
	if !ok {
		return 0, errors.Wrapf(errmsg.NotFound, "%q", name)
	}
	fd, ok := fs.freeFd()
	if !ok {
		return 0, errors.Wrapf(errmsg.NoDescriptorSlots, "open %q", name)
	}
	fs.bindFd(fd, inum, mode)
	util.DPrintf(5, "Open: %v fd %d %v\n", fs.inodes[inum], fd, mode)
	return fd, nil
}

// OpenFile is Open, or Create if flags has CreateIfMissing and the file does
// not exist.
func (fs *Fs) OpenFile(name string, mode common.Mode, flags common.Flag) (common.Fd, error) {
	if err := fs.checkMounted(); err != nil {
		return 0, err
	}
	if _, ok := fs.lookup(name); !ok && flags&common.CreateIfMissing != 0 {
		return fs.Create(name, mode)
	}
	return fs.Open(name, mode)
}
