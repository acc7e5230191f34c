package guide

import "tracking/internal/pkg/errs"

// Recipient is the destination contact of a guide: who receives the package
// and where. Immutable once the guide is created.
type Recipient struct {
	name    string
	address string
	city    string
	state   string

	isConstructed bool
}

// NewRecipient creates a Recipient. Name and address are required; city and
// state are free-form catalog text.
func NewRecipient(name, address, city, state string) (Recipient, error) {
	if name == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient name")
	}
	if address == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient address")
	}

	return Recipient{
		name:          name,
		address:       address,
		city:          city,
		state:         state,
		isConstructed: true,
	}, nil
}

// Name returns the recipient's name.
func (r Recipient) Name() string { return r.name }

// Address returns the street address.
func (r Recipient) Address() string { return r.address }

// City returns the destination city.
func (r Recipient) City() string { return r.city }

// State returns the destination state/province.
func (r Recipient) State() string { return r.state }

// Validate returns an error for the zero value.
func (r Recipient) Validate() error {
	if !r.isConstructed {
		return errs.NewValueIsRequiredError("Recipient must be created via NewRecipient")
	}
	return nil
}
