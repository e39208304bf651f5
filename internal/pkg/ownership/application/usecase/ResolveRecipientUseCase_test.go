package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	cacheport "github.com/atef1995/sayarat-sub003/internal/infrastructure/cache/port"
	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
)

func resolver(store *fakeOwnershipStore, dir *fakeDirectory, cache *fakeCache) *usecase.ResolveRecipientUseCase {
	var c cacheport.Cache
	if cache != nil {
		c = cache
	}
	return usecase.NewResolveRecipientUseCase(store, dir, c, nil)
}

func Test_Resolve_individual_listing_routes_to_its_owner(t *testing.T) {
	store := newFakeStore()
	store.addListing("lst-1", "seller-1", ownership.OwnerTypeIndividual, "seller-1", nil)
	dir := &fakeDirectory{contacts: map[string]ownership.Contact{
		"seller-1": {ID: "seller-1", Name: "Sam Seller", Email: "sam@example.com"},
	}}

	res, err := resolver(store, dir, nil).Execute(context.Background(),
		usecase.ResolveRecipientInput{ListingID: "lst-1"})

	assert.NoError(t, err)
	assert.Equal(t, ownership.OutcomeResolved, res.Outcome)
	assert.Equal(t, "seller-1", res.Recipient.ID)
	assert.Equal(t, ownership.OwnerTypeIndividual, res.Recipient.Type)
	assert.True(t, res.Recipient.IsOriginalSeller)
	assert.Empty(t, res.Recipient.CompanyName)
}

func Test_Resolve_active_company_member_receives_own_listing(t *testing.T) {
	comp := "comp-1"
	store := newFakeStore()
	store.addListing("lst-1", "mem-1", ownership.OwnerTypeIndividual, "mem-1", &comp)
	store.addMember(comp, "mem-1", ownership.MemberStatusActive)
	store.companies[comp] = "Sayarat Motors"
	dir := &fakeDirectory{contacts: map[string]ownership.Contact{
		"mem-1": {ID: "mem-1", Name: "Mira", Email: "mira@example.com"},
	}}

	res, err := resolver(store, dir, nil).Execute(context.Background(),
		usecase.ResolveRecipientInput{ListingID: "lst-1"})

	assert.NoError(t, err)
	assert.Equal(t, ownership.OutcomeResolved, res.Outcome)
	assert.Equal(t, "mem-1", res.Recipient.ID)
	assert.Equal(t, "Sayarat Motors", res.Recipient.CompanyName)
}

func Test_Resolve_inactive_owner_routes_to_top_handler(t *testing.T) {
	comp := "comp-1"
	store := newFakeStore()
	store.addListing("lst-1", "mem-1", ownership.OwnerTypeIndividual, "mem-1", &comp)
	store.addMember(comp, "mem-1", ownership.MemberStatusRemoved)
	store.addHandler(comp, "handler-2", 2, ownership.MemberStatusActive)
	store.addHandler(comp, "handler-1", 1, ownership.MemberStatusActive)
	store.companies[comp] = "Sayarat Motors"

	res, err := resolver(store, &fakeDirectory{}, nil).Execute(context.Background(),
		usecase.ResolveRecipientInput{ListingID: "lst-1"})

	assert.NoError(t, err)
	assert.Equal(t, ownership.OutcomeResolved, res.Outcome)
	assert.Equal(t, "handler-1", res.Recipient.ID)
	assert.Equal(t, ownership.OwnerTypeCompanyHandler, res.Recipient.Type)
	assert.False(t, res.Recipient.IsOriginalSeller)
	assert.Equal(t, "Sayarat Motors", res.Recipient.CompanyName)
}

func Test_Resolve_missing_membership_row_counts_as_inactive(t *testing.T) {
	comp := "comp-1"
	store := newFakeStore()
	store.addListing("lst-1", "mem-gone", ownership.OwnerTypeIndividual, "mem-gone", &comp)
	store.addHandler(comp, "handler-1", 1, ownership.MemberStatusActive)
	store.companies[comp] = "Sayarat Motors"

	res, err := resolver(store, &fakeDirectory{}, nil).Execute(context.Background(),
		usecase.ResolveRecipientInput{ListingID: "lst-1"})

	assert.NoError(t, err)
	assert.Equal(t, "handler-1", res.Recipient.ID)
}

func Test_Resolve_no_handlers_yields_no_recipient(t *testing.T) {
	comp := "comp-1"
	store := newFakeStore()
	store.addListing("lst-1", "mem-1", ownership.OwnerTypeIndividual, "mem-1", &comp)
	store.addMember(comp, "mem-1", ownership.MemberStatusSuspended)

	res, err := resolver(store, &fakeDirectory{}, nil).Execute(context.Background(),
		usecase.ResolveRecipientInput{ListingID: "lst-1"})

	assert.ErrorIs(t, err, ownership.ErrNoRecipient)
	assert.Equal(t, ownership.OutcomeFailed, res.Outcome)
}

func Test_Resolve_fallback_returns_original_seller_with_degraded_outcome(t *testing.T) {
	comp := "comp-1"
	store := newFakeStore()
	store.addListing("lst-1", "mem-1", ownership.OwnerTypeIndividual, "mem-1", &comp)
	store.addMember(comp, "mem-1", ownership.MemberStatusSuspended)
	dir := &fakeDirectory{contacts: map[string]ownership.Contact{
		"mem-1": {ID: "mem-1", Name: "Mira", Email: "mira@example.com"},
	}}

	res, err := resolver(store, dir, nil).Execute(context.Background(),
		usecase.ResolveRecipientInput{ListingID: "lst-1", AllowFallback: true})

	assert.NoError(t, err)
	assert.Equal(t, ownership.OutcomeDegradedFallback, res.Outcome)
	assert.Equal(t, "mem-1", res.Recipient.ID)
	assert.True(t, res.Recipient.IsOriginalSeller)
}

func Test_Resolve_unknown_listing_fails(t *testing.T) {
	_, err := resolver(newFakeStore(), &fakeDirectory{}, nil).Execute(context.Background(),
		usecase.ResolveRecipientInput{ListingID: "nope"})

	assert.ErrorIs(t, err, ownership.ErrListingNotFound)
}

func Test_Resolve_caches_company_name_only(t *testing.T) {
	comp := "comp-1"
	store := newFakeStore()
	store.addListing("lst-1", "mem-1", ownership.OwnerTypeIndividual, "mem-1", &comp)
	store.addMember(comp, "mem-1", ownership.MemberStatusRemoved)
	store.addHandler(comp, "handler-1", 1, ownership.MemberStatusActive)
	store.companies[comp] = "Sayarat Motors"
	cache := newFakeCache()

	uc := resolver(store, &fakeDirectory{}, cache)
	_, err := uc.Execute(context.Background(), usecase.ResolveRecipientInput{ListingID: "lst-1"})
	assert.NoError(t, err)

	// only the display name was cached, never resolution state
	assert.Equal(t, []string{"company:name:comp-1"}, cache.sets)

	// second resolution after an ownership flip reflects the new state even
	// with a warm cache
	store.members[comp+"/mem-1"] = ownership.CompanyMember{
		ID: "mem-1", CompanyID: comp, Status: ownership.MemberStatusActive,
	}
	dir := &fakeDirectory{contacts: map[string]ownership.Contact{
		"mem-1": {ID: "mem-1", Name: "Mira", Email: "mira@example.com"},
	}}
	res, err := resolver(store, dir, cache).Execute(context.Background(),
		usecase.ResolveRecipientInput{ListingID: "lst-1"})

	assert.NoError(t, err)
	assert.Equal(t, "mem-1", res.Recipient.ID)
}
