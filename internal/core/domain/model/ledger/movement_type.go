package ledger

import (
	"fmt"

	"settlement/internal/pkg/errs"
)

// MovementType classifies a ledger entry. The expected sign of the amount
// follows the package convention (positive = carrier owes the store):
//
//	CODCollected  +   cash the carrier collected on the store's behalf
//	DeliveryFee   −   fee owed to the carrier for a successful delivery
//	FailedFee     −   reduced fee owed for an unsuccessful attempt
//	PaymentIn     −   cash the carrier handed to the store
//	PaymentOut    +   cash the store handed to the carrier
//	Adjustment    ±   manual correction, description mandatory
type MovementType int

const (
	// MovementTypeUnknown represents an invalid or undefined movement type.
	MovementTypeUnknown MovementType = iota

	// DeliveryFee is the carrier's fee for a delivered order.
	DeliveryFee

	// FailedFee is the reduced fee for an unsuccessful delivery attempt.
	FailedFee

	// CODCollected is COD cash collected by the carrier.
	CODCollected

	// PaymentIn is money received from the carrier.
	PaymentIn

	// PaymentOut is money paid out to the carrier.
	PaymentOut

	// Adjustment is a manual correction entry.
	Adjustment
)

func getMovementTypeStrings() map[MovementType]string {
	return map[MovementType]string{
		MovementTypeUnknown: "Unknown",
		DeliveryFee:         "delivery_fee",
		FailedFee:           "failed_fee",
		CODCollected:        "cod_collected",
		PaymentIn:           "payment_in",
		PaymentOut:          "payment_out",
		Adjustment:          "adjustment",
	}
}

// MovementTypeFromString parses a movement type from its storage form.
func MovementTypeFromString(s string) (MovementType, error) {
	for mt, str := range getMovementTypeStrings() {
		if mt != MovementTypeUnknown && str == s {
			return mt, nil
		}
	}
	return MovementTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"movementType", fmt.Errorf("%q is not a valid movement type", s))
}

// Validate checks that the movement type is one of the defined values.
func (m MovementType) Validate() error {
	switch m {
	case DeliveryFee, FailedFee, CODCollected, PaymentIn, PaymentOut, Adjustment:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"movementType", fmt.Errorf("%d is not a valid movement type", m))
	}
}

// String returns the snake_case storage form of the movement type.
func (m MovementType) String() string {
	if str, ok := getMovementTypeStrings()[m]; ok {
		return str
	}
	return "Unknown"
}
