package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
)

// removalFixture seeds a company with one member owning two listings, each with
// a live conversation, plus one standby handler.
func removalFixture() (*fakeOwnershipStore, string) {
	comp := "comp-1"
	store := newFakeStore()
	store.companies[comp] = "Sayarat Motors"
	store.addMember(comp, "mem-1", ownership.MemberStatusRemoved)
	store.addMember(comp, "handler-1", ownership.MemberStatusActive)
	store.addHandler(comp, "handler-1", 1, ownership.MemberStatusActive)
	store.addListing("lst-1", "mem-1", ownership.OwnerTypeIndividual, "mem-1", &comp)
	store.addListing("lst-2", "mem-1", ownership.OwnerTypeIndividual, "mem-1", &comp)
	store.addConversation("conv-1", "lst-1", "mem-1")
	store.addConversation("conv-2", "lst-2", "mem-1")
	return store, comp
}

func Test_Removal_transfers_listings_and_rewrites_conversations(t *testing.T) {
	store, comp := removalFixture()
	uc := usecase.NewReassignForMemberRemovalUseCase(store, nil)

	out, err := uc.Execute(context.Background(), usecase.ReassignForMemberRemovalInput{
		MemberID: "mem-1", CompanyID: comp, PerformedBy: "admin-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, out.TransferredCount)
	assert.Equal(t, "handler-1", out.NewHandlerID)

	for _, id := range []string{"lst-1", "lst-2"} {
		l := store.listings[id]
		assert.Equal(t, "handler-1", l.CurrentOwnerID)
		assert.Equal(t, ownership.OwnerTypeCompanyHandler, l.CurrentOwnerType)
		assert.Equal(t, "mem-1", l.OriginalSellerID, "original seller must never change")
	}
	assert.Equal(t, "handler-1", store.sellers["conv-1"])
	assert.Equal(t, "handler-1", store.sellers["conv-2"])
	assert.Len(t, store.audit, 2)
	assert.Equal(t, "Member removal: mem-1", store.audit[0].Reason)
	assert.Equal(t, "admin-1", store.audit[0].ChangedBy)
}

func Test_Removal_is_idempotent(t *testing.T) {
	store, comp := removalFixture()
	uc := usecase.NewReassignForMemberRemovalUseCase(store, nil)
	in := usecase.ReassignForMemberRemovalInput{
		MemberID: "mem-1", CompanyID: comp, PerformedBy: "admin-1",
	}

	_, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)

	out, err := uc.Execute(context.Background(), in)

	assert.NoError(t, err)
	assert.Zero(t, out.TransferredCount, "second run must find nothing to move")
	assert.Len(t, store.audit, 2, "no duplicate audit rows")
}

func Test_Removal_without_eligible_handler_mutates_nothing(t *testing.T) {
	store, comp := removalFixture()
	store.handlers[comp] = nil
	uc := usecase.NewReassignForMemberRemovalUseCase(store, nil)

	_, err := uc.Execute(context.Background(), usecase.ReassignForMemberRemovalInput{
		MemberID: "mem-1", CompanyID: comp, PerformedBy: "admin-1",
	})

	assert.ErrorIs(t, err, ownership.ErrNoHandlersAvailable)
	assert.Equal(t, "mem-1", store.listings["lst-1"].CurrentOwnerID)
	assert.Equal(t, "mem-1", store.sellers["conv-1"])
	assert.Empty(t, store.audit)
}

func Test_Reactivation_returns_listings_to_original_seller(t *testing.T) {
	store, comp := removalFixture()
	removal := usecase.NewReassignForMemberRemovalUseCase(store, nil)
	_, err := removal.Execute(context.Background(), usecase.ReassignForMemberRemovalInput{
		MemberID: "mem-1", CompanyID: comp, PerformedBy: "admin-1",
	})
	assert.NoError(t, err)

	store.addMember(comp, "mem-1", ownership.MemberStatusActive)
	reactivation := usecase.NewReassignForMemberReactivationUseCase(store, nil)

	out, err := reactivation.Execute(context.Background(), usecase.ReassignForMemberReactivationInput{
		MemberID: "mem-1", CompanyID: comp, PerformedBy: "admin-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, out.TransferredCount)

	l := store.listings["lst-1"]
	assert.Equal(t, "mem-1", l.CurrentOwnerID)
	assert.Equal(t, ownership.OwnerTypeIndividual, l.CurrentOwnerType)
	assert.Equal(t, "mem-1", store.sellers["conv-1"])
	assert.Len(t, store.audit, 4, "removal and return each audited per conversation")
	assert.Equal(t, "Member reactivation: mem-1", store.audit[2].Reason)
}

func Test_Reactivation_requires_active_member(t *testing.T) {
	store, comp := removalFixture()
	uc := usecase.NewReassignForMemberReactivationUseCase(store, nil)

	// still removed
	_, err := uc.Execute(context.Background(), usecase.ReassignForMemberReactivationInput{
		MemberID: "mem-1", CompanyID: comp, PerformedBy: "admin-1",
	})
	assert.ErrorIs(t, err, ownership.ErrMemberNotActive)

	_, err = uc.Execute(context.Background(), usecase.ReassignForMemberReactivationInput{
		MemberID: "mem-unknown", CompanyID: comp, PerformedBy: "admin-1",
	})
	assert.ErrorIs(t, err, ownership.ErrMemberNotFound)
}

func Test_Reassign_validates_required_fields(t *testing.T) {
	store := newFakeStore()

	_, err := usecase.NewReassignForMemberRemovalUseCase(store, nil).
		Execute(context.Background(), usecase.ReassignForMemberRemovalInput{MemberID: "mem-1"})
	assert.Error(t, err)

	_, err = usecase.NewReassignForMemberReactivationUseCase(store, nil).
		Execute(context.Background(), usecase.ReassignForMemberReactivationInput{CompanyID: "comp-1"})
	assert.Error(t, err)
}

func Test_History_returns_newest_first_for_conversation(t *testing.T) {
	store, comp := removalFixture()
	removal := usecase.NewReassignForMemberRemovalUseCase(store, nil)
	_, err := removal.Execute(context.Background(), usecase.ReassignForMemberRemovalInput{
		MemberID: "mem-1", CompanyID: comp, PerformedBy: "admin-1",
	})
	assert.NoError(t, err)

	store.addMember(comp, "mem-1", ownership.MemberStatusActive)
	_, err = usecase.NewReassignForMemberReactivationUseCase(store, nil).
		Execute(context.Background(), usecase.ReassignForMemberReactivationInput{
			MemberID: "mem-1", CompanyID: comp, PerformedBy: "admin-1",
		})
	assert.NoError(t, err)

	uc := usecase.NewGetOwnershipHistoryUseCase(store)
	history, err := uc.Execute(context.Background(), usecase.GetOwnershipHistoryInput{
		ConversationID: "conv-1", Limit: 10,
	})

	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, "mem-1", history[0].NewOwnerID, "latest change first")
	assert.Equal(t, "handler-1", history[1].NewOwnerID)
}
