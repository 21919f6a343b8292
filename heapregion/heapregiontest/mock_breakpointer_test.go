package heapregiontest_test

import (
	"testing"

	"github.com/brkheap/heapalloc/heapregion"
	"github.com/brkheap/heapalloc/heapregion/heapregiontest"
	"github.com/brkheap/heapalloc/sizeclass"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegionGrowPropagatesHeapExhaustedFromSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := heapregiontest.NewMockBreakPointerSource(ctrl)
	src.EXPECT().Sbrk(0).Return(0, nil)
	src.EXPECT().Bytes().Return(make([]byte, 64)).AnyTimes()

	region, err := heapregion.New(src, sizeclass.CacheLineSize)
	require.NoError(t, err)

	src.EXPECT().Sbrk(4096).Return(0, heapregion.ErrHeapExhausted)
	_, err = region.Grow(4096)
	require.ErrorIs(t, err, heapregion.ErrHeapExhausted)
}
