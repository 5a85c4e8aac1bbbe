// buf holds the in-memory copy of a disk image.
//
// The whole image is read from the disk at once and written back at once;
// in between, objects are read and updated in place through byte ranges
// identified by an addr.Addr.
package buf

import (
	"fmt"

	"github.com/mit-pdos/go-wofs/addr"
	"github.com/mit-pdos/go-wofs/disk"
	"github.com/mit-pdos/go-wofs/util"
)

// Image is the in-memory content of a disk, sector-aligned.
type Image struct {
	data []byte
}

// MkImage allocates a zeroed image of sz bytes; sz must be a multiple of
// disk.SectorSize.
func MkImage(sz uint64) *Image {
	if sz%disk.SectorSize != 0 {
		panic(fmt.Errorf("image size %d is not sector-aligned", sz))
	}
	return &Image{data: make([]byte, sz)}
}

func (img *Image) Size() uint64 {
	return uint64(len(img.data))
}

func (img *Image) nsector() uint64 {
	return img.Size() / disk.SectorSize
}

func (img *Image) sector(i uint64) disk.Block {
	return img.data[i*disk.SectorSize : (i+1)*disk.SectorSize]
}

// Load reads every sector of d into the image.
func (img *Image) Load(d disk.Disk) error {
	for i := uint64(0); i < img.nsector(); i++ {
		if err := d.ReadTo(i, img.sector(i)); err != nil {
			return err
		}
	}
	util.DPrintf(5, "Load: %d sectors\n", img.nsector())
	return nil
}

// Flush writes every sector of the image to d and waits for durability.
func (img *Image) Flush(d disk.Disk) error {
	for i := uint64(0); i < img.nsector(); i++ {
		if err := d.Write(i, img.sector(i)); err != nil {
			return err
		}
	}
	util.DPrintf(5, "Flush: %d sectors\n", img.nsector())
	return d.Barrier()
}

// Slice returns the bytes of the object at a. The result aliases the image.
func (img *Image) Slice(a addr.Addr) []byte {
	if a.End() > img.Size() {
		panic(fmt.Errorf("object %v past end of image", a))
	}
	return img.data[a.Off:a.End()]
}

// Install copies data into the object at a.
func (img *Image) Install(a addr.Addr, data []byte) {
	if uint64(len(data)) != a.Sz {
		panic(fmt.Errorf("install of %d bytes into %v", len(data), a))
	}
	util.DPrintf(20, "%v: install\n", a)
	copy(img.Slice(a), data)
}

// Zero clears the object at a.
func (img *Image) Zero(a addr.Addr) {
	b := img.Slice(a)
	for i := range b {
		b[i] = 0
	}
}
