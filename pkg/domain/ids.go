// Package domain defines typed identifiers shared across feature modules.
// Distinct types keep organization and product IDs from being swapped at
// compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "scanid/pkg/domain-errors"
)

// OrganizationID identifies the tenant a scan or allocation belongs to.
type OrganizationID uuid.UUID

// ProductID identifies a catalog item returned by the lookup service.
type ProductID uuid.UUID

func (id OrganizationID) String() string { return uuid.UUID(id).String() }
func (id OrganizationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id ProductID) String() string { return uuid.UUID(id).String() }
func (id ProductID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// ParseOrganizationID parses and validates an organization ID from its string
// form. IDs must be valid, non-nil UUIDs.
func ParseOrganizationID(s string) (OrganizationID, error) {
	u, err := parseUUID(s, "organization_id")
	if err != nil {
		return OrganizationID{}, err
	}
	return OrganizationID(u), nil
}

// ParseProductID parses and validates a product ID from its string form.
func ParseProductID(s string) (ProductID, error) {
	u, err := parseUUID(s, "product_id")
	if err != nil {
		return ProductID{}, err
	}
	return ProductID(u), nil
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", field)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is not a valid UUID", field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must not be the nil UUID", field)
	}
	return u, nil
}
