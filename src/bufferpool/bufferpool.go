package bufferpool

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"framedb/src/pkg/assert"
	"framedb/src/pkg/common"
	"framedb/src/storage/page"
)

// File is the on-disk collaborator the pool caches pages of. It owns
// page numbering and all I/O; the pool never touches offsets itself.
// *file.File satisfies it.
type File interface {
	Name() string
	ReadPage(pageNo common.PageID) (*page.Page, error)
	WritePage(pg *page.Page) error
	AllocatePage() (*page.Page, error)
	DeletePage(pageNo common.PageID) error
}

// Manager multiplexes a fixed number of in-memory frames over the pages
// of any number of files, evicting with a clock (second chance) sweep.
//
// The manager is deliberately free of locking: it is single-threaded and
// non-reentrant. Callers that need concurrent access must serialize
// requests or wrap it behind their own lock.
type Manager struct {
	poolSize uint64

	descTable []frameDesc
	frames    []page.Page
	dir       Directory

	clockHand common.FrameID

	log *zap.SugaredLogger
}

// New builds a pool of poolSize frames over the given directory.
func New(poolSize uint64, dir Directory) *Manager {
	assert.Assert(poolSize > 0, "pool size must be greater than zero")

	m := &Manager{
		poolSize:  poolSize,
		descTable: make([]frameDesc, poolSize),
		frames:    make([]page.Page, poolSize),
		dir:       dir,
		clockHand: common.FrameID(poolSize - 1),
		log:       zap.NewNop().Sugar(),
	}

	for i := range m.descTable {
		m.descTable[i].frameNo = common.FrameID(i)
		m.descTable[i].clear()
	}

	return m
}

func (m *Manager) SetLogger(log *zap.SugaredLogger) {
	m.log = log
}

func (m *Manager) advanceClock() {
	m.clockHand = (m.clockHand + 1) % common.FrameID(m.poolSize)
}

// allocFrame runs the clock sweep and returns exactly one frame that is
// free to reuse: never a pinned one, and never one whose dirty content
// was not written back first.
//
// The scan is capped at 2*poolSize visits: each frame can absorb at most
// one refbit clear and one pinned skip before the sweep must have either
// found a victim or proven that every frame is pinned. The hand's
// advance is kept across calls, so successive allocations rotate through
// the pool instead of hammering one region.
func (m *Manager) allocFrame() (common.FrameID, error) {
	budget := 2 * m.poolSize

	m.advanceClock()
	for budget > 0 {
		d := &m.descTable[m.clockHand]

		if !d.valid {
			return d.frameNo, nil
		}

		if d.refbit {
			// second chance
			d.refbit = false
			m.advanceClock()
			budget--
			continue
		}

		if d.pinCount > 0 {
			m.advanceClock()
			budget--
			continue
		}

		if d.dirty {
			if err := d.file.WritePage(&m.frames[d.frameNo]); err != nil {
				return 0, fmt.Errorf(
					"failed to write back page %d of %s: %w",
					d.pageNo, d.file.Name(), err,
				)
			}
			m.log.Debugw("wrote back dirty victim",
				"file", d.file.Name(), "page", d.pageNo, "frame", d.frameNo)
		}

		m.dir.Remove(d.file, d.pageNo)
		d.clear()
		return d.frameNo, nil
	}

	return 0, ErrBufferExceeded
}

// GetPage pins the requested page and returns its in-frame content.
// A cache hit bumps the pin count and marks the frame used; a miss
// evicts a victim and reads the page from the file. Every GetPage must
// be paired with an eventual UnpinPage.
func (m *Manager) GetPage(file File, pageNo common.PageID) (*page.Page, error) {
	if frameNo, ok := m.dir.Lookup(file, pageNo); ok {
		d := &m.descTable[frameNo]
		assert.Assert(d.valid, "directory points at invalid frame %d", frameNo)

		d.pinCount++
		d.refbit = true
		return &m.frames[frameNo], nil
	}

	frameNo, err := m.allocFrame()
	if err != nil {
		return nil, err
	}

	pg, err := file.ReadPage(pageNo)
	if err != nil {
		return nil, err
	}

	m.frames[frameNo] = *pg
	m.dir.Insert(file, pageNo, frameNo)
	m.descTable[frameNo].set(file, pageNo)

	return &m.frames[frameNo], nil
}

// UnpinPage releases one pin of the page. A page that is not resident is
// ignored. The dirty flag is sticky: once set it survives until the
// frame is reclaimed, regardless of later clean unpins.
func (m *Manager) UnpinPage(file File, pageNo common.PageID, dirty bool) error {
	frameNo, ok := m.dir.Lookup(file, pageNo)
	if !ok {
		return nil
	}

	d := &m.descTable[frameNo]
	if d.pinCount == 0 {
		return fmt.Errorf(
			"page %d of %s (frame %d): %w",
			pageNo, file.Name(), frameNo, ErrPageNotPinned,
		)
	}

	d.pinCount--
	if dirty {
		d.dirty = true
	}

	return nil
}

// NewPage asks the file for a fresh page, caches it and returns it
// pinned once. The returned page carries its assigned number.
func (m *Manager) NewPage(file File) (*page.Page, error) {
	pg, err := file.AllocatePage()
	if err != nil {
		return nil, err
	}

	frameNo, err := m.allocFrame()
	if err != nil {
		return nil, err
	}

	m.frames[frameNo] = *pg
	m.dir.Insert(file, pg.Number(), frameNo)
	m.descTable[frameNo].set(file, pg.Number())

	m.log.Debugw("allocated page",
		"file", file.Name(), "page", pg.Number(), "frame", frameNo)

	return &m.frames[frameNo], nil
}

// DisposePage deletes the page from the file. A resident copy is
// discarded without write back: the page no longer exists, so there is
// nothing worth persisting.
func (m *Manager) DisposePage(file File, pageNo common.PageID) error {
	if err := file.DeletePage(pageNo); err != nil {
		return err
	}

	if frameNo, ok := m.dir.Lookup(file, pageNo); ok {
		m.dir.Remove(file, pageNo)
		m.descTable[frameNo].clear()
	}

	return nil
}

// FlushFile writes back every dirty resident page of the file and drops
// all of its frames. On success no frame references the file any more;
// a repeated flush is a no-op.
//
// Every frame, owned by the file or not, is first checked for residual
// state on an invalid descriptor; finding any means the pool is corrupt
// and the flush fails with ErrBadBuffer.
func (m *Manager) FlushFile(file File) error {
	for i := range m.descTable {
		d := &m.descTable[i]

		if !d.valid {
			if d.residual() {
				return fmt.Errorf("%s: %w", d, ErrBadBuffer)
			}
			continue
		}

		if d.file != file {
			continue
		}

		if d.pinCount > 0 {
			return fmt.Errorf(
				"page %d of %s (frame %d, pins %d): %w",
				d.pageNo, file.Name(), d.frameNo, d.pinCount, ErrPagePinned,
			)
		}

		if d.dirty {
			if err := d.file.WritePage(&m.frames[d.frameNo]); err != nil {
				return fmt.Errorf(
					"failed to flush page %d of %s: %w",
					d.pageNo, file.Name(), err,
				)
			}
		}

		m.dir.Remove(d.file, d.pageNo)
		d.clear()
	}

	m.log.Debugw("flushed file", "file", file.Name())
	return nil
}

// Close writes back whatever is still dirty. Best effort, no pin or
// consistency checks: this is the graceful shutdown path.
func (m *Manager) Close() error {
	var err error
	for i := range m.descTable {
		d := &m.descTable[i]
		if !d.dirty {
			continue
		}

		if writeErr := d.file.WritePage(&m.frames[d.frameNo]); writeErr != nil {
			err = errors.Join(err, fmt.Errorf(
				"failed to write back page %d of %s: %w",
				d.pageNo, d.file.Name(), writeErr,
			))
		}
	}

	return err
}

// ValidFrames counts the frames currently holding a page.
func (m *Manager) ValidFrames() int {
	n := 0
	for i := range m.descTable {
		if m.descTable[i].valid {
			n++
		}
	}

	return n
}

// Describe renders the per-frame state, one line per frame, followed by
// the valid-frame count.
func (m *Manager) Describe() string {
	var b strings.Builder
	for i := range m.descTable {
		b.WriteString(m.descTable[i].String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "total valid frames: %d\n", m.ValidFrames())

	return b.String()
}
