package common

const (
	ImageSize uint64 = 4 * 1024 * 1024 // default backing image size, in bytes
	BlockSize uint64 = 1024            // data region block size

	MaxFiles      uint64 = 100  // default inode table capacity
	MaxFileBlocks uint64 = 4096 // default block list capacity per inode
	MaxOpenFiles  uint64 = 100  // open-descriptor table capacity

	MaxNameLen uint64 = 255
	NAMESZ     uint64 = MaxNameLen + 1 // on-disk name field, NUL-terminated

	SUPERSZ    uint64 = 4*4 + FORMATSZ // on-disk superblock size
	FORMATSZ   uint64 = 8
	INODEHDRSZ uint64 = NAMESZ + 3*4 // inode record before the block list
	BNUMSZ     uint64 = 4            // on-disk size of a block index

	// on-disk encoding of an absent block index
	NULLDISK uint32 = ^uint32(0)
)

// Bnum is a data region block index.
type Bnum = uint64

// OptBnum is a block index that may be absent.
type OptBnum struct {
	Bnum  Bnum
	Valid bool
}

var NULLBNUM = OptBnum{}

func SomeBnum(bn Bnum) OptBnum {
	return OptBnum{Bnum: bn, Valid: true}
}

// Inum is an inode table slot.
type Inum uint64

// Fd is an open-descriptor table slot.
type Fd int

type Mode uint32

const (
	ReadOnly  Mode = 1
	WriteOnly Mode = 2
	ReadWrite Mode = 3
)

func (m Mode) Valid() bool {
	return m == ReadOnly || m == WriteOnly || m == ReadWrite
}

func (m Mode) CanRead() bool {
	return m == ReadOnly || m == ReadWrite
}

func (m Mode) CanWrite() bool {
	return m == WriteOnly || m == ReadWrite
}

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "ro"
	case WriteOnly:
		return "wo"
	case ReadWrite:
		return "rw"
	}
	return "invalid"
}

type Flag uint32

const (
	CreateIfMissing Flag = 1
)
