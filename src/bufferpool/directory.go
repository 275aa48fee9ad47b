package bufferpool

import "framedb/src/pkg/common"

// Directory is the associative index from (file, page number) to the
// frame holding that page. An entry exists if and only if the matching
// descriptor is valid and holds that (file, page); the manager maintains
// both sides of that invariant within every mutating call.
//
// Files are keyed by identity, not by name: two handles to the same
// path are two distinct keys.
type Directory interface {
	Insert(file File, pageNo common.PageID, frameNo common.FrameID)
	Remove(file File, pageNo common.PageID)
	Lookup(file File, pageNo common.PageID) (common.FrameID, bool)
}

type dirKey struct {
	file   File
	pageNo common.PageID
}

type mapDirectory struct {
	entries map[dirKey]common.FrameID
}

var _ Directory = &mapDirectory{}

// NewDirectory returns the default map-backed directory, sized for a
// pool of poolSize frames.
func NewDirectory(poolSize uint64) Directory {
	return &mapDirectory{
		entries: make(map[dirKey]common.FrameID, poolSize+poolSize/4),
	}
}

func (d *mapDirectory) Insert(file File, pageNo common.PageID, frameNo common.FrameID) {
	d.entries[dirKey{file: file, pageNo: pageNo}] = frameNo
}

func (d *mapDirectory) Remove(file File, pageNo common.PageID) {
	delete(d.entries, dirKey{file: file, pageNo: pageNo})
}

func (d *mapDirectory) Lookup(file File, pageNo common.PageID) (common.FrameID, bool) {
	frameNo, ok := d.entries[dirKey{file: file, pageNo: pageNo}]
	return frameNo, ok
}
