package calculator

import (
	"sort"

	"github.com/mmynk/cohouse/internal/models"
)

// ExpenseForBalance represents a settlement with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	PayerID string
	Shares  []SettlementShare
}

// PaymentForBalance represents a settle-up payment with the minimal information needed for balance calculations.
type PaymentForBalance struct {
	FromMemberID string // Who paid (debtor settling up)
	ToMemberID   string // Who received (creditor being paid)
	Amount       models.Money
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberID  string
	Net       models.Money // Positive = owed money, Negative = owes money
	TotalPaid models.Money
	TotalOwed models.Money
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount models.Money
}

// GroupBalances computes member balances across settlements and payments,
// returning both individual balances and a simplified debt list.
//
// Algorithm:
// - For each expense: payer contributed the assigned shares, each holder owes their share
// - For each payment: payer's balance improves, receiver's balance decreases
// - Aggregate: net = total_paid - total_owed
// - Debts: simplified using greedy matching, largest first
//
// A platform-absorbed remainder was never charged to anyone, so the payer is
// only credited with the sum of the shares.
func GroupBalances(expenses []ExpenseForBalance, payments []PaymentForBalance) ([]MemberBalance, []DebtEdge) {
	balances := make(map[string]*MemberBalance)
	get := func(id string) *MemberBalance {
		b, ok := balances[id]
		if !ok {
			b = &MemberBalance{MemberID: id}
			balances[id] = b
		}
		return b
	}

	for _, e := range expenses {
		// Skip expenses without payer (can't calculate balances)
		if e.PayerID == "" {
			continue
		}
		payer := get(e.PayerID)
		for _, s := range e.Shares {
			payer.TotalPaid += s.Amount
			get(s.ParticipantID).TotalOwed += s.Amount
		}
	}

	for _, p := range payments {
		get(p.FromMemberID).TotalPaid += p.Amount
		get(p.ToMemberID).TotalOwed += p.Amount
	}

	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.Net = b.TotalPaid - b.TotalOwed
		memberBalances = append(memberBalances, *b)
	}
	sort.Slice(memberBalances, func(i, j int) bool {
		return memberBalances[i].MemberID < memberBalances[j].MemberID
	})

	return memberBalances, simplifyDebts(memberBalances)
}

type position struct {
	id     string
	amount models.Money
}

// simplifyDebts matches debtors with creditors to minimize transactions.
func simplifyDebts(balances []MemberBalance) []DebtEdge {
	var debtors, creditors []position
	for _, b := range balances {
		switch {
		case b.Net > 0:
			creditors = append(creditors, position{b.MemberID, b.Net})
		case b.Net < 0:
			debtors = append(debtors, position{b.MemberID, -b.Net})
		}
	}
	byAmount := func(ps []position) {
		sort.Slice(ps, func(i, j int) bool {
			if ps[i].amount != ps[j].amount {
				return ps[i].amount > ps[j].amount
			}
			return ps[i].id < ps[j].id
		})
	}
	byAmount(debtors)
	byAmount(creditors)

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(debtors[i].amount, creditors[j].amount)
		edges = append(edges, DebtEdge{From: debtors[i].id, To: creditors[j].id, Amount: amount})

		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}
	return edges
}
