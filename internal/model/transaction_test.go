package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`35`, 35},
		{`35.5`, 35.5},
		{`"35.5"`, 35.5},
		{`" 350 "`, 350},
		{`0`, 0},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tc := range cases {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(tc.in), &a), "input %s", tc.in)
		assert.Equal(t, tc.want, a.Float(), "input %s", tc.in)
	}
}

func TestAmountUnmarshal_Invalid(t *testing.T) {
	for _, in := range []string{`"abc"`, `true`, `[1]`, `{}`} {
		var a Amount
		assert.Error(t, json.Unmarshal([]byte(in), &a), "input %s", in)
	}
}

func TestTransactionPairUnmarshal(t *testing.T) {
	payload := `{
		"reward_transaction": {"customer_name": "Sarah Johnson", "service": "Botox", "amount": "35.0", "date": "2024-08-15"},
		"pos_transaction": {"customer_name": "Johnson, Sarah", "service": "Neurotoxin", "amount": 350, "date": "2024-08-15"}
	}`

	var pair TransactionPair
	require.NoError(t, json.Unmarshal([]byte(payload), &pair))

	assert.Equal(t, "Sarah Johnson", pair.Reward.CustomerName)
	assert.Equal(t, 35.0, pair.Reward.Amount.Float())
	assert.Equal(t, 350.0, pair.POS.Amount.Float())
}
