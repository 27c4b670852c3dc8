package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medspasync/reconcile/internal/model"
)

func TestBatchCommand_MixedPairs(t *testing.T) {
	cfg = testConfig()

	batchPath := filepath.Join(t.TempDir(), "pairs.json")
	payload := `{
		"transaction_pairs": [
			{
				"reward_transaction": {"customer_name": "Sarah Johnson", "service": "Botox Treatment", "amount": 35.0, "date": "2024-08-15"},
				"pos_transaction": {"customer_name": "Johnson, Sarah", "service": "Neurotoxin Injection", "amount": 350.0, "date": "2024-08-15 14:30:00"}
			},
			"not an object"
		]
	}`
	require.NoError(t, os.WriteFile(batchPath, []byte(payload), 0o644))

	batchFile = batchPath
	batchThreshold = 0
	batchNoPersist = true
	t.Cleanup(func() { batchFile = ""; batchThreshold = 0; batchNoPersist = false })

	out, err := runCommand(t, batchCmd)
	require.NoError(t, err)

	var result model.BatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Items, 2)

	assert.True(t, result.Items[0].OK())
	assert.Equal(t, model.RecommendAutoAccept, result.Items[0].Result.Recommendation)

	assert.False(t, result.Items[1].OK())
	assert.Contains(t, result.Items[1].Error, "malformed pair")
	assert.Equal(t, model.ConfidenceError, result.Items[1].Result.ConfidenceLevel)

	assert.Equal(t, 2, result.ProcessingInfo.TotalPairs)
	assert.Equal(t, 1, result.ProcessingInfo.SuccessfulPredictions)
}

func TestBatchCommand_NotAList(t *testing.T) {
	cfg = testConfig()

	batchPath := filepath.Join(t.TempDir(), "pairs.json")
	require.NoError(t, os.WriteFile(batchPath, []byte(`{}`), 0o644))

	batchFile = batchPath
	batchNoPersist = true
	t.Cleanup(func() { batchFile = ""; batchNoPersist = false })

	_, err := runCommand(t, batchCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction_pairs must be a list")
}
