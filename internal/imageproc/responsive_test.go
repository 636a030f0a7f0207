package imageproc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponsiveSet_TwoWidths(t *testing.T) {
	data := createTestJPEG(t, 1000, 500)

	set, err := ResponsiveSet(context.Background(), data, []int{400, 800}, TranscodeOptions{})
	require.NoError(t, err)
	require.Len(t, set, 2)

	// Results come back in input order with the width as the upper bound.
	assert.Equal(t, 400, set[0].Width)
	assert.Equal(t, 400, set[0].Variant.Width)
	assert.Equal(t, 200, set[0].Variant.Height)

	assert.Equal(t, 800, set[1].Width)
	assert.Equal(t, 800, set[1].Variant.Width)
	assert.Equal(t, 400, set[1].Variant.Height)
}

func TestResponsiveSet_DefaultWidths(t *testing.T) {
	data := createTestJPEG(t, 1000, 500)

	set, err := ResponsiveSet(context.Background(), data, nil, TranscodeOptions{})
	require.NoError(t, err)
	require.Len(t, set, len(DefaultResponsiveWidths))

	for i, rv := range set {
		assert.Equal(t, DefaultResponsiveWidths[i], rv.Width)
		assert.LessOrEqual(t, rv.Variant.Width, rv.Width)
	}

	// Bounds above the source dimensions never upscale.
	assert.Equal(t, 1000, set[2].Variant.Width)
	assert.Equal(t, 1000, set[3].Variant.Width)
}

func TestResponsiveSet_AllOrNothing(t *testing.T) {
	data := createTestJPEG(t, 1000, 500)

	// One bad width fails the whole batch even though the other would succeed.
	set, err := ResponsiveSet(context.Background(), data, []int{400, -1}, TranscodeOptions{})
	require.Error(t, err)
	assert.Nil(t, set)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestResponsiveSet_CorruptInput(t *testing.T) {
	set, err := ResponsiveSet(context.Background(), []byte("junk"), []int{400, 800}, TranscodeOptions{})
	require.Error(t, err)
	assert.Nil(t, set)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestResponsiveSet_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResponsiveSet(ctx, createTestJPEG(t, 100, 100), []int{400}, TranscodeOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
