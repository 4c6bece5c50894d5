package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Disc is a sellable catalog item. Quantity, songs and transaction history
// are only changed through its methods.
type Disc struct {
	SID           string
	Title         string
	Artist        string
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal

	quantity     int
	songs        []string
	transactions []Transaction
}

func NewDisc(sid, title, artist string, salePrice, purchasePrice decimal.Decimal, quantity int) *Disc {
	return &Disc{
		SID:           sid,
		Title:         title,
		Artist:        artist,
		SalePrice:     salePrice,
		PurchasePrice: purchasePrice,
		quantity:      quantity,
	}
}

func (d *Disc) AddSong(title string) {
	d.songs = append(d.songs, title)
}

// Sell removes copies from stock and records a SELL transaction. Asking for
// more than is on hand returns ErrInsufficientStock and changes nothing.
func (d *Disc) Sell(copies int) (Transaction, error) {
	if copies > d.quantity {
		return Transaction{}, ErrInsufficientStock
	}

	d.quantity -= copies
	return d.record(TransactionKindSell, copies), nil
}

// Supply adds copies to stock and records a SUPPLY transaction.
func (d *Disc) Supply(copies int) Transaction {
	d.quantity += copies
	return d.record(TransactionKindSupply, copies)
}

func (d *Disc) record(kind TransactionKind, copies int) Transaction {
	tx := NewTransaction(kind, copies)
	d.transactions = append(d.transactions, tx)
	return tx
}

// CopiesSold sums the copies of all SELL transactions.
func (d *Disc) CopiesSold() int {
	sold := 0
	for _, tx := range d.transactions {
		if tx.Kind == TransactionKindSell {
			sold += tx.Copies
		}
	}
	return sold
}

func (d *Disc) Quantity() int {
	return d.quantity
}

func (d *Disc) Songs() []string {
	return append([]string(nil), d.songs...)
}

// Transactions returns the history in chronological order.
func (d *Disc) Transactions() []Transaction {
	return append([]Transaction(nil), d.transactions...)
}

func (d *Disc) LastTransaction() (Transaction, bool) {
	if len(d.transactions) == 0 {
		return Transaction{}, false
	}
	return d.transactions[len(d.transactions)-1], true
}

func (d *Disc) String() string {
	return fmt.Sprintf("SID: %s\nTitle: %s\nArtist: %s\nSong List: %s",
		d.SID, d.Title, d.Artist, strings.Join(d.songs, ", "))
}
