package ownership

import "sort"

// HandlerAssignment declares that a company member may receive messages for
// listings whose original owner is inactive. Unique per (CompanyID, MemberID).
type HandlerAssignment struct {
	ID                   string `db:"id"`
	CompanyID            string `db:"company_id"`
	MemberID             string `db:"member_id"`
	PriorityOrder        int    `db:"priority_order"`
	IsActive             bool   `db:"is_active"`
	CanHandleTransferred bool   `db:"can_handle_transferred"`
}

// HandlerCandidate pairs an assignment with the referenced member's current
// status so eligibility can be judged in one place.
type HandlerCandidate struct {
	Assignment   HandlerAssignment
	MemberStatus MemberStatus
}

// Eligible tells whether the candidate may be chosen as a message handler.
func (c HandlerCandidate) Eligible() bool {
	return c.Assignment.IsActive &&
		c.Assignment.CanHandleTransferred &&
		c.MemberStatus == MemberStatusActive
}

// SelectHandler picks the handler that should receive messages for a company's
// transferred listings: the eligible candidate with the lowest PriorityOrder,
// ties broken by MemberID for determinism. Returns false when no candidate is
// eligible. This is the single selection rule; the SQL adapters implement the
// same ordering.
func SelectHandler(candidates []HandlerCandidate) (HandlerAssignment, bool) {
	eligible := make([]HandlerCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Eligible() {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return HandlerAssignment{}, false
	}
	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i].Assignment, eligible[j].Assignment
		if a.PriorityOrder != b.PriorityOrder {
			return a.PriorityOrder < b.PriorityOrder
		}
		return a.MemberID < b.MemberID
	})
	return eligible[0].Assignment, true
}
