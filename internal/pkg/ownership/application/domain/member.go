package ownership

// MemberStatus mirrors the membership service's lifecycle states.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusPending   MemberStatus = "pending"
	MemberStatusRemoved   MemberStatus = "removed"
	MemberStatusSuspended MemberStatus = "suspended"
)

// CompanyMember is a read-only mirror of a person's affiliation with a company.
// The membership service owns these rows; this core never writes them.
type CompanyMember struct {
	ID        string       `db:"id"`
	CompanyID string       `db:"company_id"`
	Role      string       `db:"member_role"`
	Status    MemberStatus `db:"member_status"`
}

// IsActive tells whether the member may currently receive messages.
func (m CompanyMember) IsActive() bool {
	return m.Status == MemberStatusActive
}
