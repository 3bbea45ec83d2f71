package services

import (
	"settlement/internal/core/domain/model/carrier"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
)

// FeeSource identifies which rule produced a resolved shipping fee.
type FeeSource string

const (
	// FeeSourceZone means an active carrier zone matched the destination.
	FeeSourceZone FeeSource = "zone"

	// FeeSourceCoverage means the carrier's own default coverage rate applied.
	FeeSourceCoverage FeeSource = "coverage"

	// FeeSourceDefault means the global fallback rate applied.
	FeeSourceDefault FeeSource = "default"
)

// FeeQuote is the result of resolving a shipping fee.
type FeeQuote struct {
	Rate kernel.Money

	Source FeeSource

	// ZoneName is the matched zone's name; empty for coverage/default quotes.
	ZoneName string
}

// FeeResolver resolves the per-order shipping fee for a carrier and a
// destination city. Resolution order: active zone match (name or code,
// normalized) → carrier coverage rate → global fallback rate.
//
// The resolver is a pure function of its inputs; snapshotting the quote onto
// a session order at dispatch time is the caller's responsibility.
type FeeResolver struct {
	// fallbackRate is the global default fee applied when neither a zone nor
	// a carrier coverage rate matches.
	fallbackRate kernel.Money
}

// NewFeeResolver creates a resolver with the given global fallback rate.
func NewFeeResolver(fallbackRate kernel.Money) (FeeResolver, error) {
	if fallbackRate.IsNegative() {
		return FeeResolver{}, errs.NewValueIsInvalidError("fallbackRate must not be negative")
	}
	return FeeResolver{fallbackRate: fallbackRate}, nil
}

// Resolve returns the fee quote for delivering into destinationCity with the
// given carrier. The carrier must be a loaded aggregate; unknown carriers are
// rejected at the repository layer before resolution.
func (r FeeResolver) Resolve(c *carrier.Carrier, destinationCity string) (FeeQuote, error) {
	if err := c.Validate(); err != nil {
		return FeeQuote{}, err
	}

	if zone := c.ActiveZoneFor(destinationCity); zone != nil {
		return FeeQuote{Rate: zone.Rate(), Source: FeeSourceZone, ZoneName: zone.Name()}, nil
	}

	if coverage := c.CoverageRate(); coverage != nil {
		return FeeQuote{Rate: *coverage, Source: FeeSourceCoverage}, nil
	}

	return FeeQuote{Rate: r.fallbackRate, Source: FeeSourceDefault}, nil
}
