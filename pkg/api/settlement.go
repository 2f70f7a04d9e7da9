package api

// Share is one participant's amount. Amounts are whole currency units.
type Share struct {
	ParticipantID string `json:"participant_id"`
	Amount        int64  `json:"amount"`
}

// Split is the outcome of a split calculation.
type Split struct {
	Shares []Share `json:"shares"`
	// Remainder is the part of the total not charged to any participant.
	Remainder int64  `json:"remainder"`
	Policy    string `json:"policy,omitempty"`
}

// PreviewSplitRequest computes a split without recording it. Send either
// ParticipantIDs (equal split) or Shares (manual split), not both.
type PreviewSplitRequest struct {
	Total          int64    `json:"total"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
	Shares         []Share  `json:"shares,omitempty"`
}

type PreviewSplitResponse struct {
	Split *Split `json:"split"`
}

type Settlement struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	Title     string `json:"title"`
	Total     int64  `json:"total"`
	PayerID   string `json:"payer_id"`
	Mode      string `json:"mode"`
	Split     *Split `json:"split"`
	CreatedAt int64  `json:"created_at"`
	CreatedBy string `json:"created_by"`
}

// CreateSettlementRequest records a shared expense. As with PreviewSplit,
// ParticipantIDs selects an equal split and Shares a manual one.
type CreateSettlementRequest struct {
	GroupID        string   `json:"group_id"`
	Title          string   `json:"title,omitempty"`
	Total          int64    `json:"total"`
	PayerID        string   `json:"payer_id"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
	Shares         []Share  `json:"shares,omitempty"`
}

type CreateSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type GetSettlementRequest struct {
	SettlementID string `json:"settlement_id"`
}

type GetSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupID string `json:"group_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}

type Payment struct {
	ID           string `json:"id"`
	GroupID      string `json:"group_id"`
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	Amount       int64  `json:"amount"`
	Note         string `json:"note,omitempty"`
	CreatedAt    int64  `json:"created_at"`
	CreatedBy    string `json:"created_by"`
}

type RecordPaymentRequest struct {
	GroupID      string `json:"group_id"`
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	Amount       int64  `json:"amount"`
	Note         string `json:"note,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type MemberBalance struct {
	MemberID  string `json:"member_id"`
	Net       int64  `json:"net"`
	TotalPaid int64  `json:"total_paid"`
	TotalOwed int64  `json:"total_owed"`
}

type DebtEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	MemberBalances []*MemberBalance `json:"member_balances"`
	Debts          []*DebtEdge      `json:"debts"`
}
