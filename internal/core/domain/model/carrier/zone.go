package carrier

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var (
	// ErrZoneNameIsRequired is returned when creating a zone without a name.
	ErrZoneNameIsRequired = errs.NewValueIsRequiredError("zoneName")
	// ErrZoneRateIsNegative is returned when a zone rate is below zero.
	ErrZoneRateIsNegative = errs.NewValueIsInvalidError("rate must not be negative")
	// ErrZoneIsNotConstructed is returned when using an improperly initialized Zone.
	ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")
)

// Zone is a named delivery area with its own shipping fee, owned by a Carrier.
// Zone identity within a carrier is soft: names and codes are matched after
// kernel.NormalizeCity normalization, so case and accent variants refer to
// the same zone.
type Zone struct {
	id kernel.UUID

	// name is the human-entered zone name, preserved as written.
	name string

	// code is an optional short code carriers use in their own systems.
	code string

	// rate is the shipping fee charged for deliveries into this zone.
	rate kernel.Money

	// isActive controls whether the zone participates in fee resolution.
	isActive bool

	guard guard.ConstructorGuard
}

// NewZone creates a delivery zone. The name is required; the code is
// optional. The rate must not be negative.
func NewZone(id kernel.UUID, name, code string, rate kernel.Money, isActive bool) (*Zone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrZoneNameIsRequired
	}
	if rate.IsNegative() {
		return nil, ErrZoneRateIsNegative
	}

	return &Zone{
		id:       id,
		name:     name,
		code:     code,
		rate:     rate,
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the zone was created through NewZone.
func (z *Zone) Validate() error {
	if z == nil {
		return ErrZoneIsNotConstructed
	}
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// ID returns the zone identifier.
func (z *Zone) ID() kernel.UUID { return z.id }

// Name returns the zone name as entered.
func (z *Zone) Name() string { return z.name }

// Code returns the optional zone code ("" when unset).
func (z *Zone) Code() string { return z.code }

// Rate returns the shipping fee for this zone.
func (z *Zone) Rate() kernel.Money { return z.rate }

// IsActive reports whether the zone participates in fee resolution.
func (z *Zone) IsActive() bool { return z.isActive }

// Matches reports whether the normalized destination equals this zone's
// normalized name or code. The destination must already be normalized by
// the caller.
func (z *Zone) Matches(normalizedDestination string) bool {
	if normalizedDestination == "" {
		return false
	}
	if kernel.NormalizeCity(z.name) == normalizedDestination {
		return true
	}
	return z.code != "" && kernel.NormalizeCity(z.code) == normalizedDestination
}
