package errmsg

import "errors"

var (
	IOError           = errors.New("i/o error")
	SizeMismatch      = errors.New("image size mismatch")
	NameTooLong       = errors.New("name too long")
	InvalidName       = errors.New("invalid name")
	AlreadyExists     = errors.New("file already exists")
	NotFound          = errors.New("not found")
	NoInodeSlots      = errors.New("inode table full")
	NoDescriptorSlots = errors.New("descriptor table full")
	InvalidDescriptor = errors.New("invalid descriptor")
	InvalidMode       = errors.New("invalid access mode")
	AccessDenied      = errors.New("descriptor not open for reading")
	ReadOnlyViolation = errors.New("descriptor open read-only")
	OutOfSpace        = errors.New("out of space")
	FileFull          = errors.New("file block list full")
	ShortBuffer       = errors.New("buffer shorter than byte count")
	NotMounted        = errors.New("file system not mounted")
	BadConfig         = errors.New("bad configuration")
	Corrupt           = errors.New("corrupt image")
)
