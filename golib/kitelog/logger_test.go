package kitelog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewSplitsByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := New(Options{Out: &out, Err: &errOut})

	logger.Debug("hidden")
	logger.Info("query", zap.Int("index", 3))
	logger.Error("fit failed")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "query")
	assert.Contains(t, out.String(), "index")
	assert.NotContains(t, out.String(), "fit failed")
	assert.Contains(t, errOut.String(), "fit failed")
}

func TestNewVerboseJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := New(Options{Verbose: true, JSON: true, Out: &out, Err: &errOut})
	logger.Debug("labeled", zap.Int("label", 1))
	require.NoError(t, logger.Sync())

	line := strings.TrimSpace(out.String())
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "labeled", entry["msg"])
	assert.EqualValues(t, 1, entry["label"])
	assert.Empty(t, errOut.String())
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Equal(t, l, OrNop(l))
}
