package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownZone(t *testing.T) {
	r := NewResolver()

	loc, err := r.Resolve("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestResolveUnknownZone(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve("Not/A_Zone")
	assert.ErrorIs(t, err, ErrUnknownZone)
}

func TestResolveEmptyName(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve("")
	assert.ErrorIs(t, err, ErrUnknownZone)
}
