package casjobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLabels(t *testing.T) {
	want := map[int]string{
		0: "ready",
		1: "started",
		2: "canceling",
		3: "cancelled",
		4: "failed",
		5: "finished",
	}
	for code, label := range want {
		status, err := ParseJobStatus(code)
		require.NoError(t, err)
		assert.Equal(t, label, status.String())
		assert.Equal(t, code, status.Code())
	}
}

func TestParseJobStatusOutOfRange(t *testing.T) {
	for _, code := range []int{-1, 6, 100} {
		_, err := ParseJobStatus(code)
		require.Error(t, err, "code %d", code)
		assert.Equal(t, KindMalformedResponse, KindOf(err))
	}
}

func TestStatusCancelable(t *testing.T) {
	assert.True(t, StatusReady.Cancelable())
	assert.True(t, StatusStarted.Cancelable())
	assert.False(t, StatusCanceling.Cancelable())
	assert.False(t, StatusCancelled.Cancelable())
	assert.False(t, StatusFailed.Cancelable())
	assert.False(t, StatusFinished.Cancelable())
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusReady.Terminal())
	assert.False(t, StatusStarted.Terminal())
	assert.False(t, StatusCanceling.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusFinished.Terminal())
}
