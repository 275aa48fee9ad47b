package file

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"framedb/src/pkg/common"
	"framedb/src/storage/page"
)

var ErrNoSuchPage = errors.New("no such page")

// File is a collection of fixed-size pages stored at consecutive offsets.
// The buffer pool keys its directory by *File identity, so a File must be
// opened once and shared; two handles to the same path are distinct files
// as far as the cache is concerned.
//
// Deleted page numbers are tracked in memory only and get reused by
// AllocatePage. The free set does not survive a reopen.
type File struct {
	fh   afero.File
	name string
	id   uuid.UUID

	numPages common.PageID
	free     map[common.PageID]struct{}
}

// Open opens (creating if necessary) the page file at path.
func Open(fs afero.Fs, path string) (*File, error) {
	fh, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open page file %s: %w", path, err)
	}

	info, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("failed to stat page file %s: %w", path, err)
	}

	return &File{
		fh:       fh,
		name:     path,
		id:       uuid.New(),
		numPages: common.PageID(info.Size() / page.Size),
		free:     map[common.PageID]struct{}{},
	}, nil
}

func (f *File) Name() string {
	return f.name
}

// ID identifies the file in logs and diagnostics. Directory keying uses
// pointer identity, not this value.
func (f *File) ID() uuid.UUID {
	return f.id
}

// NumPages reports how many page slots the file currently spans,
// freed slots included.
func (f *File) NumPages() common.PageID {
	return f.numPages
}

func (f *File) Close() error {
	return f.fh.Close()
}

// ReadPage reads the page with the given number into a fresh Page.
// Returns ErrNoSuchPage for numbers that were never allocated or
// have been deleted.
func (f *File) ReadPage(pageNo common.PageID) (*page.Page, error) {
	if err := f.checkPresent(pageNo); err != nil {
		return nil, err
	}

	pg := page.New(pageNo)
	//nolint:gosec
	if _, err := f.fh.ReadAt(pg.Data(), int64(pageNo)*page.Size); err != nil {
		return nil, fmt.Errorf("failed to read page %d of %s: %w", pageNo, f.name, err)
	}

	return pg, nil
}

// WritePage persists pg at the offset derived from its own page number.
func (f *File) WritePage(pg *page.Page) error {
	pageNo := pg.Number()
	if err := f.checkPresent(pageNo); err != nil {
		return err
	}

	//nolint:gosec
	if _, err := f.fh.WriteAt(pg.Data(), int64(pageNo)*page.Size); err != nil {
		return fmt.Errorf("failed to write page %d of %s: %w", pageNo, f.name, err)
	}

	return nil
}

// AllocatePage assigns a page number, reusing the lowest freed one if any,
// and returns a zeroed page carrying it. The slot is materialized on disk
// immediately so that a later ReadPage of an untouched page succeeds.
func (f *File) AllocatePage() (*page.Page, error) {
	var pageNo common.PageID
	if len(f.free) > 0 {
		reusable := make([]common.PageID, 0, len(f.free))
		for no := range f.free {
			reusable = append(reusable, no)
		}
		sort.Slice(reusable, func(i, j int) bool { return reusable[i] < reusable[j] })
		pageNo = reusable[0]
		delete(f.free, pageNo)
	} else {
		pageNo = f.numPages
		f.numPages++
	}

	pg := page.New(pageNo)
	//nolint:gosec
	if _, err := f.fh.WriteAt(pg.Data(), int64(pageNo)*page.Size); err != nil {
		f.free[pageNo] = struct{}{}
		return nil, fmt.Errorf("failed to materialize page %d of %s: %w", pageNo, f.name, err)
	}

	return pg, nil
}

// DeletePage permanently removes the page from the file. Its number
// becomes available for reuse by AllocatePage.
func (f *File) DeletePage(pageNo common.PageID) error {
	if err := f.checkPresent(pageNo); err != nil {
		return err
	}

	f.free[pageNo] = struct{}{}
	return nil
}

func (f *File) checkPresent(pageNo common.PageID) error {
	if pageNo >= f.numPages {
		return fmt.Errorf("page %d of %s: %w", pageNo, f.name, ErrNoSuchPage)
	}
	if _, deleted := f.free[pageNo]; deleted {
		return fmt.Errorf("page %d of %s was deleted: %w", pageNo, f.name, ErrNoSuchPage)
	}

	return nil
}
