package bufferpool

import "errors"

var (
	// ErrBufferExceeded means the bounded clock scan found no evictable
	// frame: every frame is pinned. The caller may retry after unpinning.
	ErrBufferExceeded = errors.New("buffer pool exceeded, all frames are pinned")

	// ErrPageNotPinned reports an unpin of a resident page whose pin
	// count is already zero, a client protocol violation.
	ErrPageNotPinned = errors.New("page is not pinned")

	// ErrPagePinned aborts a file flush that found a still-pinned
	// resident page of that file.
	ErrPagePinned = errors.New("page is still pinned")

	// ErrBadBuffer reports an invalid frame carrying residual state,
	// an internal invariant violation.
	ErrBadBuffer = errors.New("invalid frame holds residual state")
)
