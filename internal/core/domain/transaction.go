package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransactionKind string

const (
	TransactionKindSell   TransactionKind = "SELL"
	TransactionKindSupply TransactionKind = "SUPPLY"
)

// Transaction is one stock movement of a disc. Values are never modified
// after NewTransaction returns.
type Transaction struct {
	ID        string
	Kind      TransactionKind
	Copies    int
	CreatedAt time.Time
}

// NewTransaction does not validate copies.
func NewTransaction(kind TransactionKind, copies int) Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Kind:      kind,
		Copies:    copies,
		CreatedAt: time.Now(),
	}
}

// TransactionEvent is emitted by the store for every recorded transaction.
type TransactionEvent struct {
	SID         string
	Transaction Transaction
}
