package addr

// Addr identifies an object in the in-memory image.
//
// Off is the byte offset of the object from the start of the image and Sz is
// its size in bytes. Objects may straddle sector boundaries; only whole-image
// transfers touch the disk.
type Addr struct {
	Off uint64
	Sz  uint64
}

func MkAddr(off uint64, sz uint64) Addr {
	return Addr{Off: off, Sz: sz}
}

// End is the offset just past the object.
func (a Addr) End() uint64 {
	return a.Off + a.Sz
}

func (a Addr) Overlaps(b Addr) bool {
	return a.Off < b.End() && b.Off < a.End()
}
