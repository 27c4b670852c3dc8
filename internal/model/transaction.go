package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// TransactionRecord is one side of a candidate reconciliation match: either a
// loyalty/reward transaction or a point-of-sale transaction. Records are
// constructed per request and discarded after scoring.
type TransactionRecord struct {
	CustomerName string `json:"customer_name"`
	Service      string `json:"service"`
	Amount       Amount `json:"amount"`
	Date         string `json:"date"`
}

// Amount is a monetary value that accepts both JSON numbers and numeric
// strings on the wire. POS exports routinely quote amounts.
type Amount float64

// UnmarshalJSON accepts 35.0 and "35.0" alike.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return eris.Wrap(err, "model: unmarshal amount string")
		}
		s = strings.TrimSpace(str)
	}
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return eris.Errorf("model: amount %q is not numeric", s)
	}
	*a = Amount(v)
	return nil
}

// Float returns the amount as a plain float64.
func (a Amount) Float() float64 { return float64(a) }

// TransactionPair couples a reward record with a POS record for scoring.
type TransactionPair struct {
	Reward TransactionRecord `json:"reward_transaction"`
	POS    TransactionRecord `json:"pos_transaction"`
}
