package ownership

import "time"

// OwnerType distinguishes how a listing's current owner came to hold it.
type OwnerType string

const (
	OwnerTypeIndividual     OwnerType = "individual"
	OwnerTypeCompanyHandler OwnerType = "company_handler"
)

// Listing is the ownership-tracking view of a marketplace listing. Only the
// owner columns are modeled here; everything else about a listing belongs to
// the listing service. CurrentOwnerID/CurrentOwnerType are rewritten solely by
// ownership transfers; OriginalSellerID is immutable after creation.
type Listing struct {
	ID               string    `db:"id"`
	CurrentOwnerID   string    `db:"current_owner_id"`
	CurrentOwnerType OwnerType `db:"current_owner_type"`
	OriginalSellerID string    `db:"original_seller_id"`
	CompanyID        *string   `db:"company_id"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// IsCompanyManaged tells whether the listing is tied to a company account.
func (l Listing) IsCompanyManaged() bool {
	return l.CompanyID != nil && *l.CompanyID != ""
}
