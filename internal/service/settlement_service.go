package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/cohouse/internal/calculator"
	"github.com/mmynk/cohouse/internal/events"
	"github.com/mmynk/cohouse/internal/models"
	"github.com/mmynk/cohouse/internal/storage"
	"github.com/mmynk/cohouse/pkg/api"
	"github.com/mmynk/cohouse/pkg/api/apiconnect"
)

// SettlementService implements the Connect SettlementService
type SettlementService struct {
	apiconnect.UnimplementedSettlementServiceHandler
	store     storage.Store
	publisher events.Publisher
	policy    calculator.RemainderPolicy
}

// NewSettlementService creates a new SettlementService. Every equal split it
// computes uses policy; a nil publisher discards events.
func NewSettlementService(store storage.Store, publisher events.Publisher, policy calculator.RemainderPolicy) *SettlementService {
	if publisher == nil {
		publisher = events.Discard
	}
	return &SettlementService{store: store, publisher: publisher, policy: policy}
}

// splitInput is the part of a request that describes how to split.
type splitInput struct {
	total          int64
	participantIDs []string
	shares         []api.Share
}

// compute runs the equal or manual split selected by the input.
func (s *SettlementService) compute(in splitInput, names map[string]string) (*calculator.SplitResult, models.SplitMode, error) {
	if len(in.participantIDs) > 0 && len(in.shares) > 0 {
		return nil, "", connect.NewError(connect.CodeInvalidArgument,
			errors.New("send participant_ids for an equal split or shares for a manual split, not both"))
	}

	total := models.Money(in.total)
	if len(in.shares) > 0 {
		shares := make([]calculator.SettlementShare, len(in.shares))
		for i, sh := range in.shares {
			shares[i] = calculator.SettlementShare{ParticipantID: sh.ParticipantID, Amount: models.Money(sh.Amount)}
		}
		result, err := calculator.ManualSplit(total, shares)
		if err != nil {
			return nil, "", calculatorError(err)
		}
		return result, models.SplitModeManual, nil
	}

	participants := make([]calculator.Participant, len(in.participantIDs))
	for i, id := range in.participantIDs {
		participants[i] = calculator.Participant{ID: id, Name: names[id]}
	}
	result, err := calculator.EqualSplit(total, participants, s.policy)
	if err != nil {
		return nil, "", calculatorError(err)
	}
	return result, models.SplitModeEqual, nil
}

func toAPISplit(shares []models.Share, remainder models.Money, policy string) *api.Split {
	out := make([]api.Share, len(shares))
	for i, sh := range shares {
		out[i] = api.Share{ParticipantID: sh.ParticipantID, Amount: int64(sh.Amount)}
	}
	return &api.Split{Shares: out, Remainder: int64(remainder), Policy: policy}
}

func toModelShares(shares []calculator.SettlementShare) []models.Share {
	out := make([]models.Share, len(shares))
	for i, sh := range shares {
		out[i] = models.Share{ParticipantID: sh.ParticipantID, Amount: sh.Amount}
	}
	return out
}

func toAPISettlement(st *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:        st.ID,
		GroupID:   st.GroupID,
		Title:     st.Title,
		Total:     int64(st.Total),
		PayerID:   st.PayerID,
		Mode:      string(st.Mode),
		Split:     toAPISplit(st.Shares, st.Remainder, st.Policy),
		CreatedAt: st.CreatedAt,
		CreatedBy: st.CreatedBy,
	}
}

func memberNames(group *models.Group) map[string]string {
	names := make(map[string]string, len(group.Members))
	for _, m := range group.Members {
		names[m.ID] = m.DisplayName
	}
	return names
}

// PreviewSplit computes a split for the settlement form without storing anything.
func (s *SettlementService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	result, _, err := s.compute(splitInput{
		total:          req.Msg.Total,
		participantIDs: req.Msg.ParticipantIDs,
		shares:         req.Msg.Shares,
	}, nil)
	if err != nil {
		return nil, err
	}

	slog.Debug("Split preview",
		"total", req.Msg.Total,
		"shares_count", len(result.Shares),
		"remainder", result.Remainder,
	)

	return connect.NewResponse(&api.PreviewSplitResponse{
		Split: toAPISplit(toModelShares(result.Shares), result.Remainder, string(result.Policy)),
	}), nil
}

// CreateSettlement records a shared expense and notifies the household.
func (s *SettlementService) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	if req.Msg.PayerID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("payer_id required"))
	}
	if !group.HasMember(req.Msg.PayerID) {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("payer_id '%s' must be a member of the group", req.Msg.PayerID))
	}
	if len(req.Msg.ParticipantIDs) == 0 && len(req.Msg.Shares) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("at least one participant required"))
	}

	result, mode, err := s.compute(splitInput{
		total:          req.Msg.Total,
		participantIDs: req.Msg.ParticipantIDs,
		shares:         req.Msg.Shares,
	}, memberNames(group))
	if err != nil {
		slog.Warn("CreateSettlement split rejected", "group_id", group.ID, "error", err)
		return nil, err
	}
	for _, sh := range result.Shares {
		if !group.HasMember(sh.ParticipantID) {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("participant '%s' must be a member of the group", sh.ParticipantID))
		}
	}

	settlement := &models.Settlement{
		GroupID:   group.ID,
		Title:     strings.TrimSpace(req.Msg.Title),
		Total:     models.Money(req.Msg.Total),
		PayerID:   req.Msg.PayerID,
		Mode:      mode,
		Policy:    string(result.Policy),
		Shares:    toModelShares(result.Shares),
		Remainder: result.Remainder,
		CreatedBy: userID,
	}

	// Save to storage (generates ID, CreatedAt and, if empty, Title)
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, storageError("CreateSettlement", err)
	}

	slog.Info("Settlement created",
		"settlement_id", settlement.ID,
		"group_id", group.ID,
		"mode", mode,
		"total", settlement.Total,
		"remainder", settlement.Remainder,
	)

	owed := make(map[string]int64, len(settlement.Shares))
	for _, sh := range settlement.Shares {
		owed[sh.ParticipantID] += int64(sh.Amount)
	}
	publish(ctx, s.publisher, events.TypeSettlementCreated, group.ID, userID, events.SettlementCreated{
		SettlementID: settlement.ID,
		Title:        settlement.Title,
		Total:        int64(settlement.Total),
		PayerID:      settlement.PayerID,
		Shares:       owed,
	})

	return connect.NewResponse(&api.CreateSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// loadSettlement fetches a settlement the caller is allowed to see.
func (s *SettlementService) loadSettlement(ctx context.Context, settlementID, userID string) (*models.Settlement, error) {
	if settlementID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("settlement_id required"))
	}
	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, storageError("GetSettlement", err)
	}
	if _, err := memberGroup(ctx, s.store, settlement.GroupID, userID); err != nil {
		return nil, err
	}
	return settlement, nil
}

// GetSettlement retrieves a settlement by ID.
func (s *SettlementService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	settlement, err := s.loadSettlement(ctx, req.Msg.SettlementID, userID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListSettlements retrieves all settlements in a group, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storageError("ListSettlements", err)
	}

	out := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = toAPISettlement(st)
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}

// DeleteSettlement deletes a settlement.
func (s *SettlementService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadSettlement(ctx, req.Msg.SettlementID, userID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteSettlement(ctx, req.Msg.SettlementID); err != nil {
		return nil, storageError("DeleteSettlement", err)
	}

	slog.Info("Settlement deleted", "settlement_id", req.Msg.SettlementID)

	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}

// RecordPayment records a settle-up payment between two members.
func (s *SettlementService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	from, to := req.Msg.FromMemberID, req.Msg.ToMemberID
	switch {
	case req.Msg.Amount <= 0:
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("amount must be positive"))
	case from == to:
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("cannot pay yourself"))
	case !group.HasMember(from) || !group.HasMember(to):
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("both members must belong to the group"))
	}

	payment := &models.Payment{
		GroupID:      group.ID,
		FromMemberID: from,
		ToMemberID:   to,
		Amount:       models.Money(req.Msg.Amount),
		Note:         strings.TrimSpace(req.Msg.Note),
		CreatedBy:    userID,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, storageError("RecordPayment", err)
	}

	slog.Info("Payment recorded", "payment_id", payment.ID, "group_id", group.ID, "amount", payment.Amount)

	publish(ctx, s.publisher, events.TypePaymentRecorded, group.ID, userID, events.PaymentRecorded{
		PaymentID:    payment.ID,
		FromMemberID: from,
		ToMemberID:   to,
		Amount:       int64(payment.Amount),
	})

	return connect.NewResponse(&api.RecordPaymentResponse{
		Payment: &api.Payment{
			ID:           payment.ID,
			GroupID:      payment.GroupID,
			FromMemberID: payment.FromMemberID,
			ToMemberID:   payment.ToMemberID,
			Amount:       int64(payment.Amount),
			Note:         payment.Note,
			CreatedAt:    payment.CreatedAt,
			CreatedBy:    payment.CreatedBy,
		},
	}), nil
}

// GetGroupBalances calculates balances across all settlements and payments in a group.
func (s *SettlementService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	groupID := req.Msg.GroupID
	if _, err := memberGroup(ctx, s.store, groupID, userID); err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, storageError("ListSettlements", err)
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, groupID)
	if err != nil {
		return nil, storageError("ListPayments", err)
	}

	expenses := make([]calculator.ExpenseForBalance, len(settlements))
	for i, st := range settlements {
		shares := make([]calculator.SettlementShare, len(st.Shares))
		for j, sh := range st.Shares {
			shares[j] = calculator.SettlementShare{ParticipantID: sh.ParticipantID, Amount: sh.Amount}
		}
		expenses[i] = calculator.ExpenseForBalance{PayerID: st.PayerID, Shares: shares}
	}
	paid := make([]calculator.PaymentForBalance, len(payments))
	for i, p := range payments {
		paid[i] = calculator.PaymentForBalance{FromMemberID: p.FromMemberID, ToMemberID: p.ToMemberID, Amount: p.Amount}
	}

	memberBalances, debtEdges := calculator.GroupBalances(expenses, paid)

	apiBalances := make([]*api.MemberBalance, len(memberBalances))
	for i, b := range memberBalances {
		apiBalances[i] = &api.MemberBalance{
			MemberID:  b.MemberID,
			Net:       int64(b.Net),
			TotalPaid: int64(b.TotalPaid),
			TotalOwed: int64(b.TotalOwed),
		}
	}
	apiDebts := make([]*api.DebtEdge, len(debtEdges))
	for i, d := range debtEdges {
		apiDebts[i] = &api.DebtEdge{From: d.From, To: d.To, Amount: int64(d.Amount)}
	}

	slog.Info("GetGroupBalances successful",
		"group_id", groupID,
		"settlements_count", len(settlements),
		"payments_count", len(payments),
		"debts_count", len(debtEdges),
	)

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		MemberBalances: apiBalances,
		Debts:          apiDebts,
	}), nil
}
