package runtimectx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptionsSaneDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.EnableDataFrameOrderBy)
	assert.True(t, opts.EnableStreamingAggregation)
	assert.False(t, opts.EnableDebugLogging)
	assert.Equal(t, 1000, opts.RDDFallbackThreshold)
}
