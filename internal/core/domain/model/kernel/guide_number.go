package kernel

import (
	"fmt"
	"regexp"

	"tracking/internal/pkg/errs"
)

// guideNumberPattern matches the external guide number format: a four-digit
// year followed by an eight-digit zero-padded sequence, e.g. "202500000042".
var guideNumberPattern = regexp.MustCompile(`^\d{4}\d{8}$`)

// GuideNumber is the external, human-facing identifier of a tracking guide.
// It is unique, sequential within a year and immutable once assigned.
// The zero value is invalid.
type GuideNumber struct {
	value string
}

// NewGuideNumber formats a guide number from a year and a sequence value.
func NewGuideNumber(year int, sequence int64) (GuideNumber, error) {
	if year < 2000 || year > 9999 {
		return GuideNumber{}, errs.NewValueIsOutOfRangeError("year", year, 2000, 9999)
	}
	if sequence <= 0 {
		return GuideNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"sequence",
			fmt.Errorf("%d is not greater than 0", sequence),
		)
	}
	return GuideNumber{value: fmt.Sprintf("%04d%08d", year, sequence)}, nil
}

// GuideNumberFromString reconstructs a guide number from persistence or from
// public tracking input.
func GuideNumberFromString(s string) (GuideNumber, error) {
	if !guideNumberPattern.MatchString(s) {
		return GuideNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"guideNumber",
			fmt.Errorf("%q does not match the guide number format", s),
		)
	}
	return GuideNumber{value: s}, nil
}

// String returns the formatted guide number.
func (n GuideNumber) String() string {
	return n.value
}

// IsEqual compares two guide numbers.
func (n GuideNumber) IsEqual(other GuideNumber) bool {
	return n.value == other.value
}

// Validate returns an error for the zero value.
func (n GuideNumber) Validate() error {
	if n.value == "" {
		return errs.NewValueIsRequiredError(
			"GuideNumber must be created via NewGuideNumber or GuideNumberFromString",
		)
	}
	return nil
}
