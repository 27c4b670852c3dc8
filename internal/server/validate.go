package server

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/medspasync/reconcile/internal/model"
)

// requiredFields are checked in wire order so error messages are stable.
var requiredFields = []string{"customer_name", "service", "amount", "date"}

type predictRequest struct {
	Reward    json.RawMessage `json:"reward_transaction"`
	POS       json.RawMessage `json:"pos_transaction"`
	Threshold *float64        `json:"threshold"`
}

type batchRequest struct {
	Pairs     []json.RawMessage `json:"transaction_pairs"`
	Threshold *float64          `json:"threshold"`
}

// decodeBody decodes a JSON request body into dst with a uniform error
// message for malformed payloads.
func decodeBody(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON request body")
	}
	return nil
}

// parseRecord validates and decodes one transaction record. name labels the
// record in error messages, e.g. "reward_transaction".
func parseRecord(raw json.RawMessage, name string) (model.TransactionRecord, error) {
	var rec model.TransactionRecord

	if len(raw) == 0 || string(raw) == "null" {
		return rec, fmt.Errorf("%s must be an object", name)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return rec, fmt.Errorf("%s must be an object", name)
	}

	for _, f := range requiredFields {
		if _, ok := fields[f]; !ok {
			return rec, fmt.Errorf("%s.%s is required", name, f)
		}
	}

	for f, dst := range map[string]*string{
		"customer_name": &rec.CustomerName,
		"service":       &rec.Service,
		"date":          &rec.Date,
	} {
		if err := json.Unmarshal(fields[f], dst); err != nil {
			return rec, fmt.Errorf("%s.%s must be a string", name, f)
		}
	}

	if err := json.Unmarshal(fields["amount"], &rec.Amount); err != nil {
		return rec, fmt.Errorf("%s.amount must be a number", name)
	}

	return rec, nil
}

// parsePair validates one batch slot. label prefixes record names with the
// pair index, e.g. "transaction_pairs[3]".
func parsePair(raw json.RawMessage, label string) (model.TransactionPair, error) {
	var pair model.TransactionPair

	var shape struct {
		Reward json.RawMessage `json:"reward_transaction"`
		POS    json.RawMessage `json:"pos_transaction"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return pair, fmt.Errorf("%s must be an object", label)
	}

	reward, err := parseRecord(shape.Reward, label+".reward_transaction")
	if err != nil {
		return pair, err
	}
	pos, err := parseRecord(shape.POS, label+".pos_transaction")
	if err != nil {
		return pair, err
	}

	pair.Reward = reward
	pair.POS = pos
	return pair, nil
}

// validateThreshold applies the configured default and enforces the [0,1]
// range.
func validateThreshold(t *float64, def float64) (float64, error) {
	if t == nil {
		return def, nil
	}
	if *t < 0 || *t > 1 {
		return 0, fmt.Errorf("threshold must be between 0 and 1")
	}
	return *t, nil
}
