package bufferpool

import (
	"fmt"

	"framedb/src/pkg/common"
)

// frameDesc holds the replacement state of one frame. The manager owns
// the whole table; callers never see frame identities.
//
// Invariants:
//   - !valid implies pinCount == 0, !dirty, !refbit, file == nil and
//     pageNo == InvalidPageID
//   - dirty implies valid
type frameDesc struct {
	frameNo  common.FrameID
	file     File
	pageNo   common.PageID
	valid    bool
	refbit   bool
	dirty    bool
	pinCount uint64
}

// set registers a freshly loaded page. The first pin is implicit.
func (d *frameDesc) set(file File, pageNo common.PageID) {
	d.file = file
	d.pageNo = pageNo
	d.valid = true
	d.refbit = true
	d.dirty = false
	d.pinCount = 1
}

// clear returns the descriptor to the free state. Content is considered
// meaningless from here on.
func (d *frameDesc) clear() {
	d.file = nil
	d.pageNo = common.InvalidPageID
	d.valid = false
	d.refbit = false
	d.dirty = false
	d.pinCount = 0
}

// residual reports whether an invalid descriptor still carries state
// that only a valid one may hold.
func (d *frameDesc) residual() bool {
	return d.pinCount != 0 ||
		d.file != nil ||
		d.pageNo != common.InvalidPageID ||
		d.dirty ||
		d.refbit
}

func (d *frameDesc) String() string {
	if !d.valid {
		return fmt.Sprintf("frame %d: free", d.frameNo)
	}

	return fmt.Sprintf(
		"frame %d: file=%s page=%d pins=%d refbit=%t dirty=%t",
		d.frameNo, d.file.Name(), d.pageNo, d.pinCount, d.refbit, d.dirty,
	)
}
