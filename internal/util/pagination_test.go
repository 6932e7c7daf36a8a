package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults pass through", 1, 10, 1, 10, 0},
		{"zero page clamps to one", 0, 10, 1, 10, 0},
		{"negative page clamps to one", -3, 10, 1, 10, 0},
		{"zero size clamps to one", 1, 0, 1, 1, 0},
		{"oversized clamps to max", 1, 500, 1, MaxPageSize, 0},
		{"offset is page minus one times size", 3, 20, 3, 20, 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, size, offset := Paginate(tc.page, tc.size)
			require.Equal(t, tc.wantPage, page)
			require.Equal(t, tc.wantSize, size)
			require.Equal(t, tc.wantOffset, offset)
		})
	}
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, TotalPages(0, 10))
	require.Equal(t, 1, TotalPages(1, 10))
	require.Equal(t, 1, TotalPages(10, 10))
	require.Equal(t, 2, TotalPages(11, 10))
	require.Equal(t, 3, TotalPages(25, 10))
	require.Equal(t, 0, TotalPages(25, 0))
}
