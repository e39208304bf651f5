package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	cacheport "github.com/atef1995/sayarat-sub003/internal/infrastructure/cache/port"
	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/port"
	directory "github.com/atef1995/sayarat-sub003/internal/repository/port"
)

const companyNameTTL = 10 * time.Minute

// ResolveRecipientInput identifies the listing and whether the caller opted in
// to the degraded original-seller fallback.
type ResolveRecipientInput struct {
	ListingID     string
	AllowFallback bool
}

// ResolveRecipientUseCase decides who currently receives buyer messages for a
// listing. It is a pure read: no ownership state is mutated or cached, so every
// call reflects the latest committed transfer. Only company display names go
// through the cache.
type ResolveRecipientUseCase struct {
	Repo  repository.OwnershipRepository
	Dir   directory.UserDirectory
	Cache cacheport.Cache // optional
	Log   *slog.Logger
}

func NewResolveRecipientUseCase(repo repository.OwnershipRepository, dir directory.UserDirectory, cache cacheport.Cache, log *slog.Logger) *ResolveRecipientUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &ResolveRecipientUseCase{Repo: repo, Dir: dir, Cache: cache, Log: log}
}

// Execute resolves the recipient per the ownership rules:
// an individually owned listing without a company always routes to its owner;
// a company listing routes to its owner while the owning member is active, and
// to the company's top-priority eligible handler otherwise.
func (uc *ResolveRecipientUseCase) Execute(ctx context.Context, in ResolveRecipientInput) (ownership.RecipientResolution, error) {
	failed := ownership.RecipientResolution{Outcome: ownership.OutcomeFailed}
	if in.ListingID == "" {
		return failed, fmt.Errorf("listingId is required")
	}

	listing, err := uc.Repo.GetListing(ctx, in.ListingID)
	if errors.Is(err, ownership.ErrListingNotFound) {
		return failed, err
	}
	if err != nil {
		return failed, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	active, err := uc.ownerActive(ctx, listing)
	if err != nil {
		return failed, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if active {
		return uc.ownerRecipient(ctx, listing)
	}

	// Owner inactive; company listings fall through to the configured handler.
	handler, err := uc.Repo.TopHandler(ctx, *listing.CompanyID)
	if err != nil {
		if in.AllowFallback {
			return uc.fallbackRecipient(ctx, listing, err)
		}
		if errors.Is(err, ownership.ErrNoHandlersAvailable) {
			return failed, ownership.ErrNoRecipient
		}
		return failed, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	companyName, err := uc.companyName(ctx, *listing.CompanyID)
	if err != nil {
		return failed, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return ownership.RecipientResolution{
		Outcome: ownership.OutcomeResolved,
		Recipient: ownership.Recipient{
			ID:               handler.ID,
			Type:             ownership.OwnerTypeCompanyHandler,
			Name:             handler.Name,
			Email:            handler.Email,
			IsOriginalSeller: false,
			CompanyName:      companyName,
		},
	}, nil
}

// ownerActive reports whether the listing's current owner may receive messages.
// Individual owners outside a company are always considered active; within a
// company the member's status decides. A missing membership row counts as
// inactive.
func (uc *ResolveRecipientUseCase) ownerActive(ctx context.Context, listing ownership.Listing) (bool, error) {
	if !listing.IsCompanyManaged() {
		return true, nil
	}
	member, err := uc.Repo.GetMember(ctx, *listing.CompanyID, listing.CurrentOwnerID)
	if errors.Is(err, ownership.ErrMemberNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return member.IsActive(), nil
}

func (uc *ResolveRecipientUseCase) ownerRecipient(ctx context.Context, listing ownership.Listing) (ownership.RecipientResolution, error) {
	failed := ownership.RecipientResolution{Outcome: ownership.OutcomeFailed}

	contact, err := uc.Dir.Contact(ctx, listing.CurrentOwnerID)
	if err != nil {
		return failed, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var companyName string
	if listing.IsCompanyManaged() {
		companyName, err = uc.companyName(ctx, *listing.CompanyID)
		if err != nil {
			return failed, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	return ownership.RecipientResolution{
		Outcome: ownership.OutcomeResolved,
		Recipient: ownership.Recipient{
			ID:               contact.ID,
			Type:             listing.CurrentOwnerType,
			Name:             contact.Name,
			Email:            contact.Email,
			IsOriginalSeller: listing.CurrentOwnerID == listing.OriginalSellerID,
			CompanyName:      companyName,
		},
	}, nil
}

// fallbackRecipient routes to the listing's original seller when handler
// lookup failed and the caller explicitly allowed degraded resolution. The
// degradation is always logged; it is never a silent default.
func (uc *ResolveRecipientUseCase) fallbackRecipient(ctx context.Context, listing ownership.Listing, cause error) (ownership.RecipientResolution, error) {
	failed := ownership.RecipientResolution{Outcome: ownership.OutcomeFailed}

	uc.Log.Warn("recipient resolution degraded to original seller",
		"listing_id", listing.ID,
		"original_seller_id", listing.OriginalSellerID,
		"cause", cause.Error(),
	)

	contact, err := uc.Dir.Contact(ctx, listing.OriginalSellerID)
	if err != nil {
		return failed, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return ownership.RecipientResolution{
		Outcome: ownership.OutcomeDegradedFallback,
		Recipient: ownership.Recipient{
			ID:               contact.ID,
			Type:             ownership.OwnerTypeIndividual,
			Name:             contact.Name,
			Email:            contact.Email,
			IsOriginalSeller: true,
		},
	}, nil
}

// companyName reads through the optional display-name cache.
func (uc *ResolveRecipientUseCase) companyName(ctx context.Context, companyID string) (string, error) {
	key := "company:name:" + companyID
	if uc.Cache != nil {
		if name, err := uc.Cache.Get(ctx, key); err == nil {
			return name, nil
		}
	}
	name, err := uc.Repo.GetCompanyName(ctx, companyID)
	if err != nil {
		return "", err
	}
	if uc.Cache != nil {
		// best effort; a failed cache write never fails resolution
		_ = uc.Cache.Set(ctx, key, name, companyNameTTL)
	}
	return name, nil
}
