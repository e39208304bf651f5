package usecase_test

import (
	"context"
	"time"

	cacheport "github.com/atef1995/sayarat-sub003/internal/infrastructure/cache/port"
	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/port"
	directory "github.com/atef1995/sayarat-sub003/internal/repository/port"
)

// fakeOwnershipStore is an in-memory stand-in for the postgres adapter. Its
// transfer methods mimic the adapter's all-or-nothing behavior: a failed
// precondition leaves every map untouched.
type fakeOwnershipStore struct {
	listings  map[string]ownership.Listing
	members   map[string]ownership.CompanyMember // companyID + "/" + memberID
	companies map[string]string
	contacts  map[string]ownership.Contact
	handlers  map[string][]ownership.HandlerCandidate

	sellers       map[string]string   // conversationID -> current seller
	convByListing map[string][]string // listingID -> conversation ids
	audit         []ownership.OwnershipChange

	topHandlerErr error
}

func newFakeStore() *fakeOwnershipStore {
	return &fakeOwnershipStore{
		listings:      map[string]ownership.Listing{},
		members:       map[string]ownership.CompanyMember{},
		companies:     map[string]string{},
		contacts:      map[string]ownership.Contact{},
		handlers:      map[string][]ownership.HandlerCandidate{},
		sellers:       map[string]string{},
		convByListing: map[string][]string{},
	}
}

var _ repository.OwnershipRepository = (*fakeOwnershipStore)(nil)

func (f *fakeOwnershipStore) GetListing(_ context.Context, listingID string) (ownership.Listing, error) {
	l, ok := f.listings[listingID]
	if !ok {
		return ownership.Listing{}, ownership.ErrListingNotFound
	}
	return l, nil
}

func (f *fakeOwnershipStore) GetMember(_ context.Context, companyID, memberID string) (ownership.CompanyMember, error) {
	m, ok := f.members[companyID+"/"+memberID]
	if !ok {
		return ownership.CompanyMember{}, ownership.ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeOwnershipStore) GetCompanyName(_ context.Context, companyID string) (string, error) {
	name, ok := f.companies[companyID]
	if !ok {
		return "", ownership.ErrCompanyNotFound
	}
	return name, nil
}

func (f *fakeOwnershipStore) TopHandler(_ context.Context, companyID string) (ownership.Contact, error) {
	if f.topHandlerErr != nil {
		return ownership.Contact{}, f.topHandlerErr
	}
	a, ok := ownership.SelectHandler(f.handlers[companyID])
	if !ok {
		return ownership.Contact{}, ownership.ErrNoHandlersAvailable
	}
	return f.contacts[a.MemberID], nil
}

func (f *fakeOwnershipStore) ListHandlers(_ context.Context, companyID string) ([]ownership.HandlerAssignment, error) {
	out := make([]ownership.HandlerAssignment, 0, len(f.handlers[companyID]))
	for _, c := range f.handlers[companyID] {
		out = append(out, c.Assignment)
	}
	return out, nil
}

func (f *fakeOwnershipStore) ReplaceHandlers(_ context.Context, companyID string, assignments []ownership.HandlerAssignment) error {
	next := make([]ownership.HandlerCandidate, 0, len(assignments))
	for _, a := range assignments {
		status := ownership.MemberStatusActive
		if m, ok := f.members[companyID+"/"+a.MemberID]; ok {
			status = m.Status
		}
		next = append(next, ownership.HandlerCandidate{Assignment: a, MemberStatus: status})
	}
	f.handlers[companyID] = next
	return nil
}

func (f *fakeOwnershipStore) TransferToHandler(_ context.Context, in repository.TransferInput) (repository.TransferResult, error) {
	a, ok := ownership.SelectHandler(f.handlers[in.CompanyID])
	if !ok {
		return repository.TransferResult{}, ownership.ErrNoHandlersAvailable
	}

	res := repository.TransferResult{NewOwnerID: a.MemberID}
	for id, l := range f.listings {
		if l.CompanyID == nil || *l.CompanyID != in.CompanyID {
			continue
		}
		if l.CurrentOwnerID != in.MemberID || l.CurrentOwnerType != ownership.OwnerTypeIndividual {
			continue
		}
		l.CurrentOwnerID = a.MemberID
		l.CurrentOwnerType = ownership.OwnerTypeCompanyHandler
		f.listings[id] = l
		res.TransferredCount++

		res.ConversationIDs = append(res.ConversationIDs,
			f.reassignSellers(id, a.MemberID, ownership.OwnerTypeCompanyHandler, in)...)
	}
	return res, nil
}

func (f *fakeOwnershipStore) TransferToOriginalSeller(_ context.Context, in repository.TransferInput) (repository.TransferResult, error) {
	m, ok := f.members[in.CompanyID+"/"+in.MemberID]
	if !ok {
		return repository.TransferResult{}, ownership.ErrMemberNotFound
	}
	if !m.IsActive() {
		return repository.TransferResult{}, ownership.ErrMemberNotActive
	}

	res := repository.TransferResult{NewOwnerID: in.MemberID}
	for id, l := range f.listings {
		if l.CompanyID == nil || *l.CompanyID != in.CompanyID {
			continue
		}
		if l.OriginalSellerID != in.MemberID || l.CurrentOwnerType != ownership.OwnerTypeCompanyHandler {
			continue
		}
		l.CurrentOwnerID = in.MemberID
		l.CurrentOwnerType = ownership.OwnerTypeIndividual
		f.listings[id] = l
		res.TransferredCount++

		res.ConversationIDs = append(res.ConversationIDs,
			f.reassignSellers(id, in.MemberID, ownership.OwnerTypeIndividual, in)...)
	}
	return res, nil
}

func (f *fakeOwnershipStore) reassignSellers(listingID, newSeller string, ownerType ownership.OwnerType, in repository.TransferInput) []string {
	var changed []string
	for _, convID := range f.convByListing[listingID] {
		old := f.sellers[convID]
		if old == newSeller {
			continue
		}
		f.sellers[convID] = newSeller
		oldCopy := old
		f.audit = append(f.audit, ownership.OwnershipChange{
			ConversationID: convID,
			OldOwnerID:     &oldCopy,
			NewOwnerID:     newSeller,
			OwnerType:      ownerType,
			Reason:         in.Reason,
			ChangedBy:      in.PerformedBy,
			CreatedAt:      time.Now(),
		})
		changed = append(changed, convID)
	}
	return changed
}

func (f *fakeOwnershipStore) OwnershipHistory(_ context.Context, conversationID string, limit, offset int) ([]ownership.OwnershipChange, error) {
	var out []ownership.OwnershipChange
	for i := len(f.audit) - 1; i >= 0; i-- {
		if f.audit[i].ConversationID == conversationID {
			out = append(out, f.audit[i])
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// seed helpers

func (f *fakeOwnershipStore) addListing(id, ownerID string, ownerType ownership.OwnerType, originalSeller string, companyID *string) {
	f.listings[id] = ownership.Listing{
		ID:               id,
		CurrentOwnerID:   ownerID,
		CurrentOwnerType: ownerType,
		OriginalSellerID: originalSeller,
		CompanyID:        companyID,
	}
}

func (f *fakeOwnershipStore) addMember(companyID, memberID string, status ownership.MemberStatus) {
	f.members[companyID+"/"+memberID] = ownership.CompanyMember{
		ID: memberID, CompanyID: companyID, Status: status,
	}
}

func (f *fakeOwnershipStore) addHandler(companyID, memberID string, priority int, status ownership.MemberStatus) {
	f.handlers[companyID] = append(f.handlers[companyID], ownership.HandlerCandidate{
		Assignment: ownership.HandlerAssignment{
			CompanyID:            companyID,
			MemberID:             memberID,
			PriorityOrder:        priority,
			IsActive:             true,
			CanHandleTransferred: true,
		},
		MemberStatus: status,
	})
	if _, ok := f.contacts[memberID]; !ok {
		f.contacts[memberID] = ownership.Contact{ID: memberID, Name: memberID, Email: memberID + "@example.com"}
	}
}

func (f *fakeOwnershipStore) addConversation(convID, listingID, sellerID string) {
	f.convByListing[listingID] = append(f.convByListing[listingID], convID)
	f.sellers[convID] = sellerID
}

// fakeDirectory resolves contacts from a map.
type fakeDirectory struct {
	contacts map[string]ownership.Contact
}

func (d *fakeDirectory) Contact(_ context.Context, userID string) (ownership.Contact, error) {
	c, ok := d.contacts[userID]
	if !ok {
		return ownership.Contact{}, directory.ErrUserNotFound
	}
	return c, nil
}

// fakeCache records reads and writes so tests can prove what resolution caches.
type fakeCache struct {
	values map[string]string
	sets   []string
	gets   []string
}

var _ cacheport.Cache = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.gets = append(c.gets, key)
	v, ok := c.values[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.sets = append(c.sets, key)
	c.values[key] = value
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := c.values[k]; ok {
			delete(c.values, k)
			n++
		}
	}
	return n, nil
}

func (c *fakeCache) Close() error { return nil }
