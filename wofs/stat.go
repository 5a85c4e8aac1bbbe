package wofs

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/errmsg"
	"github.com/mit-pdos/go-wofs/super"
)

// ID identifies this mount in log output.
func (fs *Fs) ID() uuid.UUID {
	return fs.id
}

func (fs *Fs) Layout() super.Layout {
	return fs.layout
}

// Superblock returns a copy of the in-memory superblock.
func (fs *Fs) Superblock() super.Superblock {
	return *fs.sb
}

func (fs *Fs) Stat(name string) (FileInfo, error) {
	if err := fs.checkMounted(); err != nil {
		return FileInfo{}, err
	}
	inum, ok := fs.lookup(name)
	if !ok {
		return FileInfo{}, errors.Wrapf(errmsg.NotFound, "%q", name)
	}
	ip := fs.inodes[inum]
	return FileInfo{
		Name:    ip.Name,
		Id:      ip.Id,
		NBlocks: ip.NBlocks(),
		Size:    ip.NBlocks() * common.BlockSize,
		Blocks:  append([]common.Bnum(nil), ip.Blocks...),
	}, nil
}

// Files lists file names in creation order.
func (fs *Fs) Files() []string {
	var names []string
	for _, ip := range fs.inodes {
		if ip.Used() {
			names = append(names, ip.Name)
		}
	}
	return names
}
