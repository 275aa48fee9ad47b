package common

// PageID is the number of a page within a single file.
type PageID uint64

// InvalidPageID marks "no page". Descriptors of free frames hold it.
const InvalidPageID = PageID(^uint64(0))

// FrameID indexes a slot in the buffer pool.
type FrameID uint64
