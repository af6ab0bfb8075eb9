package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitBridgeConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("blank units pass through", func(t *testing.T) {
		converter := &fakeConverter{}
		bridge := NewUnitBridge(converter, testLogger())

		assert.Equal(t, 2.0, bridge.Convert(ctx, 2, "", "g", "flour"))
		assert.Equal(t, 2.0, bridge.Convert(ctx, 2, "cup", "", "flour"))
		assert.Equal(t, 2.0, bridge.Convert(ctx, 2, "  ", "g", "flour"))
		assert.Zero(t, converter.calls, "converter must not be called for blank units")
	})

	t.Run("equal units pass through", func(t *testing.T) {
		converter := &fakeConverter{}
		bridge := NewUnitBridge(converter, testLogger())

		assert.Equal(t, 3.0, bridge.Convert(ctx, 3, "g", "g", "flour"))
		assert.Equal(t, 3.0, bridge.Convert(ctx, 3, "Cup", "cup", "flour"))
		assert.Zero(t, converter.calls)
	})

	t.Run("converts through the converter", func(t *testing.T) {
		converter := &fakeConverter{conversions: map[string]float64{"cup->g": 120}}
		bridge := NewUnitBridge(converter, testLogger())

		assert.InDelta(t, 240, bridge.Convert(ctx, 2, "cup", "g", "flour"), 0.001)
	})

	t.Run("converter failure falls back to original amount", func(t *testing.T) {
		converter := &fakeConverter{err: fmt.Errorf("api unavailable")}
		bridge := NewUnitBridge(converter, testLogger())

		assert.Equal(t, 2.0, bridge.Convert(ctx, 2, "cup", "g", "flour"))
	})
}
