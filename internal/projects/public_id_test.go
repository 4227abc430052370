package projects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublicID(t *testing.T) {
	id, err := NewPublicID("forless")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "forless-"))
	assert.Len(t, id, len("forless-")+12)

	other, err := NewPublicID("forless")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}
