package payment

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/openshelf/biblio/catalog"
)

// MaxPayableFee caps any single payment or refund at the largest late fee the
// schedule can produce.
const MaxPayableFee = catalog.MaxLateFee

// Processor is the payment-processor surface the orchestration functions
// call. *Gateway satisfies it; tests substitute a mock.
type Processor interface {
	ProcessPayment(patronID string, amount float64, description string) (*Transaction, error)
	ProcessRefund(transactionID string, amount float64) (*Refund, error)
}

// PayLateFees charges a patron's late fees through the processor. Precondition
// failures return immediately without invoking the processor; processor
// failures are classified as gateway errors or unexpected errors in the
// returned message. The third value is the transaction id, empty on failure.
func PayLateFees(patronID string, amount float64, gw Processor) (bool, string, string) {
	if !catalog.ValidPatronID(patronID) {
		return false, "Invalid patron ID. Must be exactly 6 digits.", ""
	}
	if amount <= 0 {
		return false, "Payment amount must be a positive number.", ""
	}
	if amount > MaxPayableFee {
		return false, fmt.Sprintf("Payment amount exceeds maximum late fee of $%.2f.", MaxPayableFee), ""
	}

	if gw == nil {
		gw = NewGateway("", nil)
	}

	description := fmt.Sprintf("Library late fees for patron %s", patronID)
	txn, err := gw.ProcessPayment(patronID, amount, description)
	if err != nil {
		return false, classify(err), ""
	}

	message := fmt.Sprintf("Payment of $%.2f processed successfully. Transaction ID: %s",
		txn.Amount, txn.TransactionID)
	return true, message, txn.TransactionID
}

// RefundLateFeePayment refunds a prior late-fee payment through the
// processor, with the same precondition checks and error classification as
// PayLateFees. The third value is the refund id, empty on failure.
func RefundLateFeePayment(transactionID string, amount float64, gw Processor) (bool, string, string) {
	if transactionID == "" {
		return false, "Invalid transaction ID.", ""
	}
	if amount <= 0 {
		return false, "Refund amount must be a positive number.", ""
	}
	if amount > MaxPayableFee {
		return false, fmt.Sprintf("Refund amount exceeds maximum late fee of $%.2f.", MaxPayableFee), ""
	}

	if gw == nil {
		gw = NewGateway("", nil)
	}

	refund, err := gw.ProcessRefund(transactionID, amount)
	if err != nil {
		return false, classify(err), ""
	}

	message := fmt.Sprintf("Refund of $%.2f processed successfully. Refund ID: %s",
		refund.Amount, refund.RefundID)
	return true, message, refund.RefundID
}

// classify separates failures the processor raised itself from anything else
// escaping the call. Only the former is a normal user path.
func classify(err error) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return fmt.Sprintf("Payment gateway error: %s", gwErr.Error())
	}
	return fmt.Sprintf("Unexpected error: %s", err.Error())
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
