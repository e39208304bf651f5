package ownership

// Contact is the minimal identity needed to address a recipient.
type Contact struct {
	ID    string `db:"id"`
	Name  string `db:"full_name"`
	Email string `db:"email"`
}

// Recipient is the party that should receive new buyer messages for a listing.
type Recipient struct {
	ID               string
	Type             OwnerType
	Name             string
	Email            string
	IsOriginalSeller bool
	CompanyName      string
}

// Outcome tags how a resolution was obtained so callers and tests can tell a
// normal resolution from the degraded original-seller fallback.
type Outcome string

const (
	OutcomeResolved         Outcome = "resolved"
	OutcomeDegradedFallback Outcome = "degraded_fallback"
	OutcomeFailed           Outcome = "failed"
)

// RecipientResolution is the result of resolving a listing's message recipient.
type RecipientResolution struct {
	Outcome   Outcome
	Recipient Recipient
}
