package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotelier/internal/models"
)

func (db *DB) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	query := `INSERT INTO complaint (customer_id, description) VALUES (?, ?)`
	result, err := db.db.ExecContext(ctx, query, c.CustomerID, c.Description)
	if err != nil {
		return fmt.Errorf("failed to insert complaint: %w", err)
	}
	c.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	return nil
}

func (db *DB) GetComplaint(ctx context.Context, id int64) (*models.Complaint, error) {
	query := `SELECT complaint_id, customer_id, description, resolve_status, created_at
              FROM complaint WHERE complaint_id = ?`
	var c models.Complaint
	err := db.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.CustomerID, &c.Description, &c.Resolved, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return &c, nil
}

func (db *DB) ListComplaints(ctx context.Context) ([]*models.Complaint, error) {
	query := `SELECT complaint_id, customer_id, description, resolve_status, created_at
              FROM complaint ORDER BY created_at DESC`
	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	var complaints []*models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.Description, &c.Resolved, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		complaints = append(complaints, &c)
	}
	return complaints, rows.Err()
}

// ResolveComplaint flips an open complaint to resolved. Already-resolved
// complaints are not an error; the operation is idempotent.
func (db *DB) ResolveComplaint(ctx context.Context, id int64) error {
	result, err := db.db.ExecContext(ctx,
		`UPDATE complaint SET resolve_status = 1 WHERE complaint_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to resolve complaint: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrComplaintNotFound
	}
	return nil
}

func (db *DB) DeleteComplaint(ctx context.Context, id int64) error {
	result, err := db.db.ExecContext(ctx, `DELETE FROM complaint WHERE complaint_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete complaint: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrComplaintNotFound
	}
	return nil
}
