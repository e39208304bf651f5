package ownership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
)

func candidate(memberID string, priority int, active, canHandle bool, status ownership.MemberStatus) ownership.HandlerCandidate {
	return ownership.HandlerCandidate{
		Assignment: ownership.HandlerAssignment{
			CompanyID:            "comp-1",
			MemberID:             memberID,
			PriorityOrder:        priority,
			IsActive:             active,
			CanHandleTransferred: canHandle,
		},
		MemberStatus: status,
	}
}

func Test_SelectHandler_picks_lowest_priority_eligible(t *testing.T) {
	got, ok := ownership.SelectHandler([]ownership.HandlerCandidate{
		candidate("m-3", 3, true, true, ownership.MemberStatusActive),
		candidate("m-1", 1, true, true, ownership.MemberStatusActive),
		candidate("m-2", 2, true, true, ownership.MemberStatusActive),
	})

	assert.True(t, ok)
	assert.Equal(t, "m-1", got.MemberID)
}

func Test_SelectHandler_skips_ineligible_candidates(t *testing.T) {
	tests := []struct {
		name string
		bad  ownership.HandlerCandidate
	}{
		{"assignment inactive", candidate("m-1", 1, false, true, ownership.MemberStatusActive)},
		{"cannot handle transferred", candidate("m-1", 1, true, false, ownership.MemberStatusActive)},
		{"member suspended", candidate("m-1", 1, true, true, ownership.MemberStatusSuspended)},
		{"member removed", candidate("m-1", 1, true, true, ownership.MemberStatusRemoved)},
		{"member pending", candidate("m-1", 1, true, true, ownership.MemberStatusPending)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ownership.SelectHandler([]ownership.HandlerCandidate{
				tc.bad,
				candidate("m-9", 9, true, true, ownership.MemberStatusActive),
			})

			assert.True(t, ok)
			assert.Equal(t, "m-9", got.MemberID, "ineligible low-priority candidate must be skipped")
		})
	}
}

func Test_SelectHandler_breaks_priority_ties_by_member_id(t *testing.T) {
	got, ok := ownership.SelectHandler([]ownership.HandlerCandidate{
		candidate("m-b", 1, true, true, ownership.MemberStatusActive),
		candidate("m-a", 1, true, true, ownership.MemberStatusActive),
	})

	assert.True(t, ok)
	assert.Equal(t, "m-a", got.MemberID)
}

func Test_SelectHandler_reports_no_eligible_candidate(t *testing.T) {
	_, ok := ownership.SelectHandler([]ownership.HandlerCandidate{
		candidate("m-1", 1, false, true, ownership.MemberStatusActive),
		candidate("m-2", 2, true, true, ownership.MemberStatusRemoved),
	})
	assert.False(t, ok)

	_, ok = ownership.SelectHandler(nil)
	assert.False(t, ok)
}

func Test_Listing_company_managed_requires_company_id(t *testing.T) {
	compID := "comp-1"

	assert.True(t, ownership.Listing{CompanyID: &compID}.IsCompanyManaged())
	assert.False(t, ownership.Listing{}.IsCompanyManaged())

	empty := ""
	assert.False(t, ownership.Listing{CompanyID: &empty}.IsCompanyManaged())
}
