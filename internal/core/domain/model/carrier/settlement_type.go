package carrier

import (
	"fmt"

	"settlement/internal/pkg/errs"
)

// SettlementType describes how a carrier is compensated.
//
//   - Net: the carrier remits COD cash minus its fees.
//   - Gross: the carrier remits the full COD cash; fees are invoiced separately.
//   - Salary: fees are covered by a fixed salary; per-order fees are informational.
//
// The reconciliation math is identical for all three; the type drives how the
// business reads the resulting balance.
type SettlementType int

const (
	// SettlementTypeUnknown represents an invalid or undefined settlement type.
	SettlementTypeUnknown SettlementType = iota

	// Net deducts carrier fees from the remitted COD cash.
	Net

	// Gross remits full COD cash; fees are settled separately.
	Gross

	// Salary compensates the carrier with a fixed salary.
	Salary
)

func getSettlementTypeStrings() map[SettlementType]string {
	return map[SettlementType]string{
		SettlementTypeUnknown: "Unknown",
		Net:                   "net",
		Gross:                 "gross",
		Salary:                "salary",
	}
}

// SettlementTypeFromString parses a settlement type from its storage form.
func SettlementTypeFromString(s string) (SettlementType, error) {
	for st, str := range getSettlementTypeStrings() {
		if st != SettlementTypeUnknown && str == s {
			return st, nil
		}
	}
	return SettlementTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"settlementType", fmt.Errorf("%q is not a valid settlement type", s))
}

// Validate checks that the settlement type is one of the defined values.
func (s SettlementType) Validate() error {
	switch s {
	case Net, Gross, Salary:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"settlementType", fmt.Errorf("%d is not a valid settlement type", s))
	}
}

// String returns the lowercase storage form of the settlement type.
func (s SettlementType) String() string {
	if str, ok := getSettlementTypeStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
