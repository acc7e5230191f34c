package commands

import (
	"errors"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrCreateGuideCommandIsNotConstructed = errors.New(
	"CreateGuideCommand must be created via NewCreateGuideCommand constructor",
)

// CreateGuideCommand represents a request to register a new tracking guide.
// The guide number is generated by the handler from the yearly sequence; the
// caller never supplies it.
//
// Example:
//
//	recipient, _ := guide.NewRecipient("Ana Ruiz", "Av. Reforma 100", "CDMX", "CDMX")
//	price, _ := kernel.MoneyFromString("350.00")
//	cmd, err := NewCreateGuideCommand(kernel.NewUUID(), businessID, branchID,
//	    recipient, price, "fragile", guide.PriorityNormal, &userID)
//	if err != nil {
//	    return fmt.Errorf("invalid guide data: %w", err)
//	}
type CreateGuideCommand struct { //nolint:recvcheck //using for validation
	guideID        kernel.UUID
	businessID     kernel.UUID
	originBranchID kernel.UUID
	recipient      guide.Recipient
	basePrice      kernel.Money
	observations   string
	priority       guide.Priority
	createdBy      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateGuideCommand creates a command to register a new tracking guide.
// createdBy identifies the business user creating the guide; it may be nil
// for integration-created guides.
func NewCreateGuideCommand(
	guideID, businessID, originBranchID kernel.UUID,
	recipient guide.Recipient,
	basePrice kernel.Money,
	observations string,
	priority guide.Priority,
	createdBy *kernel.UUID,
) (CreateGuideCommand, error) {
	cmd := CreateGuideCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGuideID(guideID),
		cmd.setBusinessID(businessID),
		cmd.setOriginBranchID(originBranchID),
		cmd.setRecipient(recipient),
		cmd.setPriority(priority),
	); err != nil {
		return CreateGuideCommand{}, err
	}

	cmd.basePrice = basePrice
	cmd.observations = observations
	cmd.createdBy = createdBy
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateGuideCommand) Validate() error {
	return c.guard.Validate(ErrCreateGuideCommandIsNotConstructed)
}

// GuideID returns the identifier the new guide will be created with.
func (c CreateGuideCommand) GuideID() kernel.UUID { return c.guideID }

// BusinessID returns the owning business.
func (c CreateGuideCommand) BusinessID() kernel.UUID { return c.businessID }

// OriginBranchID returns the branch the package ships from.
func (c CreateGuideCommand) OriginBranchID() kernel.UUID { return c.originBranchID }

// Recipient returns the destination contact.
func (c CreateGuideCommand) Recipient() guide.Recipient { return c.recipient }

// BasePrice returns the contracted delivery price.
func (c CreateGuideCommand) BasePrice() kernel.Money { return c.basePrice }

// Observations returns the free-form note for the guide.
func (c CreateGuideCommand) Observations() string { return c.observations }

// Priority returns the delivery priority.
func (c CreateGuideCommand) Priority() guide.Priority { return c.priority }

// CreatedBy returns the creating user, nil for integrations.
func (c CreateGuideCommand) CreatedBy() *kernel.UUID { return c.createdBy }

func (c *CreateGuideCommand) setGuideID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.guideID = id
	return nil
}

func (c *CreateGuideCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.businessID = id
	return nil
}

func (c *CreateGuideCommand) setOriginBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.originBranchID = id
	return nil
}

func (c *CreateGuideCommand) setRecipient(recipient guide.Recipient) error {
	if err := recipient.Validate(); err != nil {
		return err
	}
	c.recipient = recipient
	return nil
}

func (c *CreateGuideCommand) setPriority(priority guide.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	c.priority = priority
	return nil
}
