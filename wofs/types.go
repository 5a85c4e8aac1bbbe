/*
Package wofs is a write-once file system kept in a fixed-size disk image.

The image is read into memory by Mount and written back, whole, by Unmount.
In between, files are created in a flat namespace and grow by appending
blocks; a block once written is never changed, freed or reused. Nothing is
durable until Unmount returns.

An Fs is not safe for concurrent use.
*/
package wofs

import (
	"io"

	"github.com/google/uuid"
	"github.com/nnsgmsone/damrey/logger"

	"github.com/mit-pdos/go-wofs/alloc"
	"github.com/mit-pdos/go-wofs/buf"
	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/disk"
	"github.com/mit-pdos/go-wofs/inode"
	"github.com/mit-pdos/go-wofs/super"
)

type (
	Fd   = common.Fd
	Mode = common.Mode
	Flag = common.Flag
)

const (
	ReadOnly        = common.ReadOnly
	WriteOnly       = common.WriteOnly
	ReadWrite       = common.ReadWrite
	CreateIfMissing = common.CreateIfMissing
)

type Config struct {
	ImageSize     uint64 // bytes; a multiple of disk.SectorSize
	MaxFiles      uint64 // inode table capacity
	MaxFileBlocks uint64 // blocks per file
	LogWriter     io.Writer
}

// Fs is a mounted image.
type Fs struct {
	id  uuid.UUID
	log logger.Log

	d      disk.Disk
	img    *buf.Image
	layout super.Layout

	sb     *super.Superblock
	alloc  *alloc.Alloc
	inodes []*inode.Inode
	fds    []openFile

	mounted bool
}

// FileInfo describes a file.
type FileInfo struct {
	Name    string
	Id      uint64
	NBlocks uint64
	Size    uint64 // bytes
	Blocks  []common.Bnum
}
