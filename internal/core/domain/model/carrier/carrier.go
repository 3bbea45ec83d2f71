package carrier

import (
	"errors"
	"fmt"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

// Domain errors for carrier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a carrier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCarrierIsNotConstructed is returned when using an improperly initialized Carrier.
	ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")
	// ErrZoneNotFound is returned when a requested zone does not belong to the carrier.
	ErrZoneNotFound = errors.New("zone not found")
)

// Carrier represents a third-party delivery company and its settlement
// configuration. It is the aggregate root for zone management and the
// authoritative source of fee parameters used during reconciliation.
//
// Business rules:
//   - Must have a valid UUID and a non-empty name
//   - failedAttemptFeePercent lies in [0, 100]; it only applies when
//     chargesFailedAttempts is set
//   - Zone names and codes are unique per carrier after normalization
//   - coverageRate, when set, is the carrier-wide fee for destinations
//     outside every configured zone
//
// Example usage:
//
//	c, err := NewCarrier(kernel.NewUUID(), "Speedy Logistics", Net, true, 50, "weekly")
//	if err != nil {
//	    // handle construction error
//	}
//	_ = c.AddZone(kernel.NewUUID(), "Medellín", "MED", rate, true)
type Carrier struct {
	id kernel.UUID

	// name is the display name of the carrier.
	name string

	// settlementType describes how the carrier is compensated.
	settlementType SettlementType

	// chargesFailedAttempts is true when the carrier bills a reduced fee
	// for delivery attempts that did not succeed.
	chargesFailedAttempts bool

	// failedAttemptFeePercent is the percentage of the normal fee charged
	// for a failed attempt (0–100). Ignored when chargesFailedAttempts is false.
	failedAttemptFeePercent int

	// paymentSchedule is a free-form schedule label ("weekly", "biweekly", ...).
	paymentSchedule string

	// coverageRate is the carrier's default fee for destinations not matching
	// any zone. Nil when the carrier has no own coverage rate.
	coverageRate *kernel.Money

	// zones are the carrier's delivery areas.
	zones []*Zone

	guard guard.ConstructorGuard
}

// NewCarrier creates a new Carrier with the given settlement configuration.
// This is the only way to create a valid Carrier instance; all parameters
// are validated and zone management starts empty.
func NewCarrier(
	id kernel.UUID,
	name string,
	settlementType SettlementType,
	chargesFailedAttempts bool,
	failedAttemptFeePercent int,
	paymentSchedule string,
) (*Carrier, error) {
	c := &Carrier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setSettlementType(settlementType),
		c.setFailedAttemptFee(chargesFailedAttempts, failedAttemptFeePercent),
	); err != nil {
		return nil, err
	}

	c.paymentSchedule = paymentSchedule
	return c, nil
}

// RestoreCarrier reconstructs a Carrier aggregate from persistent storage,
// including its zones and optional coverage rate. The restored carrier
// behaves identically to one built through normal domain operations.
func RestoreCarrier(
	id kernel.UUID,
	name string,
	settlementType SettlementType,
	chargesFailedAttempts bool,
	failedAttemptFeePercent int,
	paymentSchedule string,
	coverageRate *kernel.Money,
	zones []*Zone,
) (*Carrier, error) {
	c := &Carrier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setSettlementType(settlementType),
		c.setFailedAttemptFee(chargesFailedAttempts, failedAttemptFeePercent),
		c.setZones(zones),
	); err != nil {
		return nil, err
	}

	c.paymentSchedule = paymentSchedule
	c.coverageRate = coverageRate
	return c, nil
}

// Validate ensures the Carrier instance was properly constructed.
func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

// IsEqual compares two carriers by their unique identifiers.
func (c *Carrier) IsEqual(other *Carrier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the carrier's unique identifier.
func (c *Carrier) ID() kernel.UUID { return c.id }

// Name returns the carrier's display name.
func (c *Carrier) Name() string { return c.name }

// SettlementType returns how the carrier is compensated.
func (c *Carrier) SettlementType() SettlementType { return c.settlementType }

// ChargesFailedAttempts reports whether failed delivery attempts incur a fee.
func (c *Carrier) ChargesFailedAttempts() bool { return c.chargesFailedAttempts }

// FailedAttemptFeePercent returns the fraction (0–100) of the normal fee
// charged for a failed attempt. Zero when the carrier does not charge them.
func (c *Carrier) FailedAttemptFeePercent() int {
	if !c.chargesFailedAttempts {
		return 0
	}
	return c.failedAttemptFeePercent
}

// PaymentSchedule returns the carrier's payment schedule label.
func (c *Carrier) PaymentSchedule() string { return c.paymentSchedule }

// CoverageRate returns the carrier-wide default fee, or nil when unset.
func (c *Carrier) CoverageRate() *kernel.Money { return c.coverageRate }

// SetCoverageRate sets or clears the carrier-wide default fee.
func (c *Carrier) SetCoverageRate(rate *kernel.Money) error {
	if rate != nil && rate.IsNegative() {
		return errs.NewValueIsInvalidError("coverageRate must not be negative")
	}
	c.coverageRate = rate
	return nil
}

// Zones returns the carrier's zones. The slice must not be mutated by callers.
func (c *Carrier) Zones() []*Zone { return c.zones }

// AddZone creates a new zone on the carrier. Fails with Conflict when another
// zone already uses the same normalized name or code.
func (c *Carrier) AddZone(id kernel.UUID, name, code string, rate kernel.Money, isActive bool) error {
	zone, err := NewZone(id, name, code, rate, isActive)
	if err != nil {
		return err
	}

	if existing := c.findZoneByKey(name, code, kernel.UUID{}); existing != nil {
		return errs.NewConflictError("zone",
			fmt.Sprintf("zone %q already exists for carrier %s", name, c.id))
	}

	c.zones = append(c.zones, zone)
	return nil
}

// UpdateZone replaces the named zone's attributes. Fails with ErrZoneNotFound
// when the zone does not exist, and with Conflict when the new name or code
// collides with a different zone.
func (c *Carrier) UpdateZone(zoneID kernel.UUID, name, code string, rate kernel.Money, isActive bool) error {
	idx := c.zoneIndexByID(zoneID)
	if idx < 0 {
		return ErrZoneNotFound
	}

	if collision := c.findZoneByKey(name, code, zoneID); collision != nil {
		return errs.NewConflictError("zone",
			fmt.Sprintf("zone %q already exists for carrier %s", name, c.id))
	}

	zone, err := NewZone(zoneID, name, code, rate, isActive)
	if err != nil {
		return err
	}

	c.zones[idx] = zone
	return nil
}

// RemoveZone deletes the zone from the carrier.
// Fails with ErrZoneNotFound when the zone does not exist.
func (c *Carrier) RemoveZone(zoneID kernel.UUID) error {
	idx := c.zoneIndexByID(zoneID)
	if idx < 0 {
		return ErrZoneNotFound
	}

	c.zones = append(c.zones[:idx], c.zones[idx+1:]...)
	return nil
}

// ZoneByID returns the zone with the given identifier.
func (c *Carrier) ZoneByID(zoneID kernel.UUID) (*Zone, error) {
	idx := c.zoneIndexByID(zoneID)
	if idx < 0 {
		return nil, ErrZoneNotFound
	}
	return c.zones[idx], nil
}

// ActiveZoneFor returns the first active zone whose name or code matches the
// destination after normalization, or nil when no zone matches.
func (c *Carrier) ActiveZoneFor(destinationCity string) *Zone {
	normalized := kernel.NormalizeCity(destinationCity)
	for _, zone := range c.zones {
		if zone.IsActive() && zone.Matches(normalized) {
			return zone
		}
	}
	return nil
}

// findZoneByKey returns a zone whose normalized name or code collides with
// the given name/code, ignoring the zone identified by excludeID.
func (c *Carrier) findZoneByKey(name, code string, excludeID kernel.UUID) *Zone {
	normalizedName := kernel.NormalizeCity(name)
	normalizedCode := kernel.NormalizeCity(code)

	for _, zone := range c.zones {
		if zone.id.IsEqual(excludeID) {
			continue
		}
		if kernel.NormalizeCity(zone.name) == normalizedName {
			return zone
		}
		if normalizedCode != "" && zone.code != "" && kernel.NormalizeCity(zone.code) == normalizedCode {
			return zone
		}
	}
	return nil
}

func (c *Carrier) zoneIndexByID(zoneID kernel.UUID) int {
	for i, zone := range c.zones {
		if zone.id.IsEqual(zoneID) {
			return i
		}
	}
	return -1
}

func (c *Carrier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Carrier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Carrier) setSettlementType(settlementType SettlementType) error {
	if err := settlementType.Validate(); err != nil {
		return err
	}
	c.settlementType = settlementType
	return nil
}

func (c *Carrier) setFailedAttemptFee(charges bool, percent int) error {
	if percent < 0 || percent > 100 {
		return errs.NewValueIsOutOfRangeError("failedAttemptFeePercent", percent, 0, 100)
	}
	c.chargesFailedAttempts = charges
	c.failedAttemptFeePercent = percent
	return nil
}

func (c *Carrier) setZones(zones []*Zone) error {
	for _, zone := range zones {
		if err := zone.Validate(); err != nil {
			return err
		}
	}
	c.zones = zones
	return nil
}
