package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopRoot(ctx Context, props Props) (Node, error) {
	return &Frame{}, nil
}

func validComposition() *Composition {
	return &Composition{
		ID:               "demo",
		DurationInFrames: 300,
		FPS:              30,
		Width:            1920,
		Height:           1080,
		Root:             nopRoot,
	}
}

func TestComposition_Validate_OK(t *testing.T) {
	require.NoError(t, validComposition().Validate())
}

func TestComposition_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Composition)
		wantCode ValidationErrorCode
	}{
		{"empty id", func(c *Composition) { c.ID = "" }, ErrCodeEmptyID},
		{"zero duration", func(c *Composition) { c.DurationInFrames = 0 }, ErrCodeNonPositiveDimension},
		{"negative duration", func(c *Composition) { c.DurationInFrames = -1 }, ErrCodeNonPositiveDimension},
		{"zero fps", func(c *Composition) { c.FPS = 0 }, ErrCodeNonPositiveDimension},
		{"zero width", func(c *Composition) { c.Width = 0 }, ErrCodeNonPositiveDimension},
		{"zero height", func(c *Composition) { c.Height = 0 }, ErrCodeNonPositiveDimension},
		{"nil root", func(c *Composition) { c.Root = nil }, ErrCodeNilRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := validComposition()
			tt.mutate(comp)

			err := comp.Validate()
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantCode, ve.Code)
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsConfigError(&ConfigError{Code: ErrCodeRangeTooShort, Message: "x"}))
	assert.False(t, IsConfigError(assert.AnError))

	assert.True(t, IsNotFound(&NotFoundError{CompositionID: "x"}))
	assert.False(t, IsNotFound(assert.AnError))

	assert.False(t, IsValidationError(assert.AnError))
}
