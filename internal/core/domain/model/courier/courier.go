package courier

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsRequired is returned when attempting to create a courier without an email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier. Couriers receive guide assignments,
// progress deliveries and earn commission per completed delivery.
//
// Business rules:
//   - a courier must have a valid UUID, non-empty name and email
//   - a courier may only be assigned guides while an active contract covers
//     the assignment date
//   - the commission rate may be overridden per contract; otherwise the
//     system-wide rate applies
type Courier struct {
	id    kernel.UUID
	name  string
	email string

	// contractFrom/contractUntil bound the active contract window.
	// contractUntil nil means open-ended.
	contractFrom  *time.Time
	contractUntil *time.Time

	// commissionRate overrides the system commission rate when set, e.g.
	// 0.25 for 25%.
	commissionRate *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the given identity and contract
// window. commissionRate is optional.
func NewCourier(
	id kernel.UUID,
	name, email string,
	contractFrom, contractUntil *time.Time,
	commissionRate *decimal.Decimal,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setEmail(email),
		c.setContract(contractFrom, contractUntil),
	); err != nil {
		return nil, err
	}

	c.commissionRate = commissionRate
	return c, nil
}

// Validate ensures the Courier was created via NewCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's name.
func (c *Courier) Name() string { return c.name }

// Email returns the courier's notification address.
func (c *Courier) Email() string { return c.email }

// ContractFrom returns the start of the contract window, nil if none.
func (c *Courier) ContractFrom() *time.Time { return c.contractFrom }

// ContractUntil returns the end of the contract window, nil for open-ended.
func (c *Courier) ContractUntil() *time.Time { return c.contractUntil }

// CommissionRate returns the contract-specific commission rate, nil when the
// system-wide rate applies.
func (c *Courier) CommissionRate() *decimal.Decimal { return c.commissionRate }

// HasActiveContract reports whether the courier's contract covers the given
// day. A courier without a contract window is never active.
func (c *Courier) HasActiveContract(at time.Time) bool {
	if c.contractFrom == nil {
		return false
	}
	if at.Before(*c.contractFrom) {
		return false
	}
	if c.contractUntil != nil && at.After(*c.contractUntil) {
		return false
	}
	return true
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	c.email = email
	return nil
}

func (c *Courier) setContract(from, until *time.Time) error {
	if from != nil && until != nil && until.Before(*from) {
		return errs.NewValueIsInvalidErrorWithCause(
			"contract window",
			fmt.Errorf("until %s precedes from %s", until, from),
		)
	}
	c.contractFrom = from
	c.contractUntil = until
	return nil
}
