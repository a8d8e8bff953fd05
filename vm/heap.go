package xovm

/*
	The heap is a resizable linear byte array addressed by a 64-bit
	virtual address starting at 0. Capacity grows (or shrinks) in whole
	64 KiB pages via heap_resize; addresses past the end of the
	allocated region fault.
*/

const (
	HeapPageSizeInBytes = 64 * 1024

	// 2 GiB ceiling on the linear memory
	maxHeapPages = 32 * 1024
)

type Heap struct {
	data []byte
}

func NewHeap(initPages int) *Heap {
	return &Heap{data: make([]byte, initPages*HeapPageSizeInBytes)}
}

// CapacityInPages reports the current size in 64 KiB pages.
func (h *Heap) CapacityInPages() uint64 {
	return uint64(len(h.data) / HeapPageSizeInBytes)
}

// Resize grows or shrinks the heap to the given page count and returns
// the new page count. Shrinking truncates; addresses past the new end
// become out of bounds.
func (h *Heap) Resize(pages uint64) uint64 {
	if pages > maxHeapPages {
		panic(errHeapOutOfBounds)
	}

	newSize := int(pages) * HeapPageSizeInBytes
	if newSize <= len(h.data) {
		h.data = h.data[:newSize]
		return pages
	}

	grown := make([]byte, newSize)
	copy(grown, h.data)
	h.data = grown
	return pages
}

// bytesAt checks the access range and returns the aliasing slice.
func (h *Heap) bytesAt(addr uint64, length int) []byte {
	end := addr + uint64(length)
	if end > uint64(len(h.data)) || end < addr {
		panic(errHeapOutOfBounds)
	}
	return h.data[addr:end]
}

// Fill writes `value` into `count` bytes starting at dst.
func (h *Heap) Fill(dst uint64, value byte, count uint64) {
	if count == 0 {
		return
	}
	region := h.bytesAt(dst, int(count))
	for i := range region {
		region[i] = value
	}
}

// Copy moves `count` bytes from src to dst; the regions may overlap.
func (h *Heap) Copy(dst, src uint64, count uint64) {
	if count == 0 || dst == src {
		return
	}
	dstRegion := h.bytesAt(dst, int(count))
	srcRegion := h.bytesAt(src, int(count))
	copy(dstRegion, srcRegion)
}
