package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipquote/rate-service/internal/domain/model"
	"github.com/shipquote/rate-service/internal/packing"
)

// An item too large for any built-in box only packs when the custom-box
// fallback is threaded through the service's packer options.
func TestShippingService_PreviewPacking_CustomBoxOption(t *testing.T) {
	oversized := []model.PackItem{
		{Name: "surfboard", LengthIn: 80, WidthIn: 22, HeightIn: 4, WeightLbs: 18},
	}

	t.Run("without the option the item stays unpacked", func(t *testing.T) {
		svc := NewShippingService(nil, nil)

		result := svc.PreviewPacking(context.Background(), oversized, false)

		assert.Empty(t, result.Boxes)
		assert.Len(t, result.Unpacked, 1)
	})

	t.Run("with the option a custom box is invented", func(t *testing.T) {
		svc := NewShippingService(nil, nil, packing.WithCustomBoxes(2, 1))

		result := svc.PreviewPacking(context.Background(), oversized, false)

		require.Len(t, result.Boxes, 1)
		assert.Empty(t, result.Unpacked)
		assert.Equal(t, "CUSTOM", result.Boxes[0].Box.ID)
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "custom box")
	})
}

func TestShippingService_PreviewPacking_PreferFewerBoxesKeepsBaseOptions(t *testing.T) {
	svc := NewShippingService(nil, nil, packing.WithCustomBoxes(2, 1))

	result := svc.PreviewPacking(context.Background(), []model.PackItem{
		{Name: "surfboard", LengthIn: 80, WidthIn: 22, HeightIn: 4, WeightLbs: 18},
	}, true)

	require.Len(t, result.Boxes, 1)
	assert.Equal(t, "CUSTOM", result.Boxes[0].Box.ID)
}
