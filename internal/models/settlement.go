package models

// SplitMode records how a settlement's shares were produced.
type SplitMode string

const (
	SplitModeEqual  SplitMode = "equal"
	SplitModeManual SplitMode = "manual"
)

// Share is the amount one participant owes toward a settlement.
type Share struct {
	ParticipantID string
	Amount        Money
}

// Settlement represents a shared expense divided among group members.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the household this settlement belongs to.
	GroupID string

	// Title is a short description (e.g., "Electricity - March").
	Title string

	// Total is the full expense amount.
	Total Money

	// PayerID is the member who paid the expense up front.
	PayerID string

	// Mode is how the shares were computed.
	Mode SplitMode

	// Policy is the remainder policy used for equal splits. Empty for manual splits.
	Policy string

	// Shares are the per-participant amounts in input order.
	Shares []Share

	// Remainder is the part of Total not assigned to any participant.
	// Sum(Shares) + Remainder == Total.
	Remainder Money

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CreatedBy is the member ID who recorded this settlement.
	CreatedBy string
}

// Payment represents a settle-up transfer between group members.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// FromMemberID is the member who paid (debtor settling up).
	FromMemberID string

	// ToMemberID is the member who received payment (creditor being paid).
	ToMemberID string

	// Amount is the payment amount.
	Amount Money

	// Note is an optional description for the payment.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64

	// CreatedBy is the member ID who recorded this payment.
	CreatedBy string
}
