package page

import "framedb/src/pkg/common"

// Size is the fixed size of every page, in bytes.
const Size = 4096

// Page is a fixed-size content blob that carries its own page number.
// The buffer pool owns one Page per frame; callers get pointers into
// that pool and must not retain them past the matching unpin.
type Page struct {
	number common.PageID
	data   [Size]byte
}

// New returns a zeroed page with the given number.
func New(number common.PageID) *Page {
	return &Page{number: number}
}

func (p *Page) Number() common.PageID {
	return p.number
}

// Data exposes the page content for in-place reads and writes.
func (p *Page) Data() []byte {
	return p.data[:]
}

func (p *Page) SetData(d []byte) {
	copy(p.data[:], d)
}
