package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/cohouse/internal/models"
)

// CreateSettlement persists a new settlement and its shares to the database.
// An empty title is generated from the participants' display names.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	// Generate ID if not set
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if settlement.Title == "" {
		names, err := displayNames(ctx, tx, settlement.GroupID, settlement.Shares)
		if err != nil {
			return err
		}
		settlement.Title = generateTitle(names)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, title, total, payer_id, mode, policy, remainder, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GroupID, settlement.Title, settlement.Total, settlement.PayerID,
		string(settlement.Mode), settlement.Policy, settlement.Remainder, settlement.CreatedAt, settlement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	for i, share := range settlement.Shares {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO settlement_shares (settlement_id, position, participant_id, amount) VALUES (?, ?, ?, ?)",
			settlement.ID, i, share.ParticipantID, share.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// displayNames resolves share participants to member display names, falling
// back to the raw ID for anyone not found in the group.
func displayNames(ctx context.Context, tx *sql.Tx, groupID string, shares []models.Share) ([]string, error) {
	names := make([]string, 0, len(shares))
	for _, share := range shares {
		var name string
		err := tx.QueryRowContext(ctx,
			"SELECT display_name FROM group_members WHERE group_id = ? AND member_id = ?",
			groupID, share.ParticipantID,
		).Scan(&name)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to look up member name: %w", err)
		}
		if name == "" {
			name = share.ParticipantID
		}
		names = append(names, name)
	}
	return names, nil
}

// GetSettlement retrieves a settlement by ID, including its shares in order.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var mode string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, title, total, payer_id, mode, policy, remainder, created_at, created_by
		 FROM settlements WHERE id = ?`,
		settlementID,
	).Scan(&settlement.ID, &settlement.GroupID, &settlement.Title, &settlement.Total, &settlement.PayerID,
		&mode, &settlement.Policy, &settlement.Remainder, &settlement.CreatedAt, &settlement.CreatedBy)
	if err == sql.ErrNoRows {
		return nil, notFound("settlement", settlementID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	settlement.Mode = models.SplitMode(mode)

	shares, err := s.settlementShares(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	settlement.Shares = shares
	return settlement, nil
}

func (s *SQLiteStore) settlementShares(ctx context.Context, settlementID string) ([]models.Share, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id, amount FROM settlement_shares WHERE settlement_id = ? ORDER BY position",
		settlementID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []models.Share
	for rows.Next() {
		var share models.Share
		if err := rows.Scan(&share.ParticipantID, &share.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}
	return shares, nil
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by group: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan settlement id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	settlements := make([]*models.Settlement, 0, len(ids))
	for _, id := range ids {
		settlement, err := s.GetSettlement(ctx, id)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, settlement)
	}
	return settlements, nil
}

// DeleteSettlement removes a settlement by ID.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, settlementID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("settlement", settlementID)
	}
	return nil
}
