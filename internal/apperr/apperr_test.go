package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(New(KindConflict, "vehicle is already sold")))
	assert.Equal(t, KindStorage, KindOf(errors.New("plain")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindStorage, "failed to create sale", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to create sale: connection reset", err.Error())
	assert.True(t, IsKind(err, KindStorage))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("recording sale: %w", New(KindNotFound, "client not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
}
