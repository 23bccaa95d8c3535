package domain

import (
	"fmt"
	"time"
)

// Transaction status vocabulary of the payment gateway. This is an open
// external contract: new values may appear at any time, so mapping must fail
// closed instead of defaulting to a mutating state.
const (
	TxStatusCapture    = "capture"
	TxStatusSettlement = "settlement"
	TxStatusPending    = "pending"
	TxStatusDeny       = "deny"
	TxStatusCancel     = "cancel"
	TxStatusExpire     = "expire"

	FraudAccept    = "accept"
	FraudChallenge = "challenge"
)

// PaymentNotification is an inbound webhook payload from the gateway. Each
// one is appended to the notification log before it drives a transition, so
// "did we ever receive this callback" stays answerable after the fact.
type PaymentNotification struct {
	ID                string    `json:"-" gorm:"type:char(36);primaryKey"`
	OrderID           string    `json:"order_id" gorm:"type:char(36);not null;index"`
	TransactionStatus string    `json:"transaction_status" gorm:"not null"`
	FraudStatus       string    `json:"fraud_status"`
	PaymentType       string    `json:"payment_type"`
	GrossAmount       string    `json:"gross_amount"`
	TransactionTime   string    `json:"transaction_time"`
	ReceivedAt        time.Time `json:"-" gorm:"autoCreateTime"`
}

// MapExternalStatus converts the gateway vocabulary to an internal order
// status. Unrecognized combinations return ErrUnmappedExternalStatus and must
// leave the order untouched.
func MapExternalStatus(txStatus, fraudStatus string) (OrderStatus, error) {
	switch txStatus {
	case TxStatusSettlement:
		return StatusPaid, nil
	case TxStatusCapture:
		switch fraudStatus {
		case FraudAccept:
			return StatusPaid, nil
		case FraudChallenge:
			return StatusPending, nil
		default:
			return "", fmt.Errorf("%w: capture with fraud status %q", ErrUnmappedExternalStatus, fraudStatus)
		}
	case TxStatusPending:
		return StatusPending, nil
	case TxStatusDeny, TxStatusExpire, TxStatusCancel:
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnmappedExternalStatus, txStatus)
	}
}
