package payment

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultAPIKey is used when no key is injected into the simulator.
const DefaultAPIKey = "test_api_key_12345"

// Success thresholds for the simulated unreliability: a unit draw above the
// threshold succeeds.
const (
	paymentFailureRate = 0.1
	refundFailureRate  = 0.05
)

// GatewayError signals a failure raised by the payment processor itself, as
// opposed to anything else going wrong around the call.
type GatewayError struct {
	Msg string
}

func (e *GatewayError) Error() string {
	return e.Msg
}

func gatewayErrorf(format string, args ...interface{}) *GatewayError {
	return &GatewayError{Msg: fmt.Sprintf(format, args...)}
}

// Outcomes supplies the unit draws deciding simulated success or failure.
// Tests inject a deterministic source.
type Outcomes interface {
	Draw() float64
}

type randomOutcomes struct {
	rng *rand.Rand
}

func (r *randomOutcomes) Draw() float64 {
	return r.rng.Float64()
}

// Transaction is one successful simulated payment, immutable once ledgered.
type Transaction struct {
	TransactionID string  `json:"transaction_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	PatronID      string  `json:"patron_id"`
	Description   string  `json:"description"`
}

// Refund is the receipt for a successful simulated refund. Refunds are not
// ledgered.
type Refund struct {
	RefundID      string  `json:"refund_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"original_transaction_id"`
}

// Gateway simulates an external payment processor. It keeps an append-only
// in-memory ledger of successful transactions for refund validation; the
// ledger lives as long as the Gateway instance and is never persisted.
type Gateway struct {
	apiKey   string
	outcomes Outcomes

	mu     sync.Mutex
	ledger []Transaction
}

// NewGateway builds a simulator with the given API key and outcome source.
// Empty key and nil outcomes fall back to the defaults.
func NewGateway(apiKey string, outcomes Outcomes) *Gateway {
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}
	if outcomes == nil {
		outcomes = &randomOutcomes{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	}
	return &Gateway{apiKey: apiKey, outcomes: outcomes}
}

// ProcessPayment charges a patron. It succeeds 90% of the time, appending the
// transaction to the ledger; the rest simulates a decline with no state
// change.
func (g *Gateway) ProcessPayment(patronID string, amount float64, description string) (*Transaction, error) {
	if patronID == "" {
		return nil, gatewayErrorf("Invalid patron ID")
	}
	if amount <= 0 {
		return nil, gatewayErrorf("Amount must be a positive number")
	}

	if g.outcomes.Draw() <= paymentFailureRate {
		return nil, gatewayErrorf("Payment processing failed - insufficient funds or card declined")
	}

	txn := Transaction{
		TransactionID: "txn_" + uuid.NewString(),
		Status:        "success",
		Amount:        roundCents(amount),
		PatronID:      patronID,
		Description:   description,
	}

	g.mu.Lock()
	g.ledger = append(g.ledger, txn)
	g.mu.Unlock()

	return &txn, nil
}

// ProcessRefund refunds part or all of a ledgered transaction. It succeeds
// 95% of the time; the refund itself is not added to the ledger.
func (g *Gateway) ProcessRefund(transactionID string, amount float64) (*Refund, error) {
	if transactionID == "" {
		return nil, gatewayErrorf("Invalid transaction ID")
	}
	if amount <= 0 {
		return nil, gatewayErrorf("Refund amount must be a positive number")
	}

	original := g.GetTransaction(transactionID)
	if original == nil {
		return nil, gatewayErrorf("Transaction %s not found", transactionID)
	}
	if amount > original.Amount {
		return nil, gatewayErrorf("Refund amount cannot exceed original transaction amount")
	}

	if g.outcomes.Draw() <= refundFailureRate {
		return nil, gatewayErrorf("Refund processing failed - gateway error")
	}

	return &Refund{
		RefundID:      "ref_" + uuid.NewString(),
		Status:        "success",
		Amount:        roundCents(amount),
		TransactionID: transactionID,
	}, nil
}

// GetTransaction returns a copy of the ledgered transaction, nil when the id
// is unknown.
func (g *Gateway) GetTransaction(transactionID string) *Transaction {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.ledger {
		if g.ledger[i].TransactionID == transactionID {
			txn := g.ledger[i]
			return &txn
		}
	}
	return nil
}
