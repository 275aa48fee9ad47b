package bufferpool

import (
	"github.com/stretchr/testify/mock"

	"framedb/src/pkg/common"
	"framedb/src/storage/page"
)

type MockFile struct {
	mock.Mock
}

var _ File = &MockFile{}

func (m *MockFile) Name() string {
	return "mockfile"
}

func (m *MockFile) ReadPage(pageNo common.PageID) (*page.Page, error) {
	args := m.Called(pageNo)
	if pg := args.Get(0); pg != nil {
		return pg.(*page.Page), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFile) WritePage(pg *page.Page) error {
	args := m.Called(pg)
	return args.Error(0)
}

func (m *MockFile) AllocatePage() (*page.Page, error) {
	args := m.Called()
	if pg := args.Get(0); pg != nil {
		return pg.(*page.Page), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFile) DeletePage(pageNo common.PageID) error {
	args := m.Called(pageNo)
	return args.Error(0)
}

type MockDirectory struct {
	mock.Mock
}

var _ Directory = &MockDirectory{}

func (m *MockDirectory) Insert(file File, pageNo common.PageID, frameNo common.FrameID) {
	m.Called(file, pageNo, frameNo)
}

func (m *MockDirectory) Remove(file File, pageNo common.PageID) {
	m.Called(file, pageNo)
}

func (m *MockDirectory) Lookup(file File, pageNo common.PageID) (common.FrameID, bool) {
	args := m.Called(file, pageNo)
	return args.Get(0).(common.FrameID), args.Bool(1)
}
