package page

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"framedb/src/pkg/common"
)

func TestNewCarriesNumber(t *testing.T) {
	pg := New(7)
	assert.Equal(t, common.PageID(7), pg.Number())
	assert.Len(t, pg.Data(), Size)
}

func TestSetDataTruncatesToPageSize(t *testing.T) {
	pg := New(0)
	big := make([]byte, Size+100)
	for i := range big {
		big[i] = 0xAB
	}

	pg.SetData(big)
	assert.Equal(t, byte(0xAB), pg.Data()[Size-1])
}
