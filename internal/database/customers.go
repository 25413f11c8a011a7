package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotelier/internal/models"
)

func (db *DB) CreateCustomer(ctx context.Context, c *models.Customer) error {
	query := `INSERT INTO customer (customer_name, number_of_persons, contact_no, email, id_card_no, address)
              VALUES (?, ?, ?, ?, ?, ?)`
	result, err := db.db.ExecContext(ctx, query,
		c.Name, c.Persons, c.ContactNo, c.Email, c.IDCardNo, c.Address)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	c.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	return nil
}

func (db *DB) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	query := `SELECT customer_id, customer_name, number_of_persons, contact_no, email, id_card_no, address, created_at
              FROM customer WHERE customer_id = ?`
	row := db.db.QueryRowContext(ctx, query, id)

	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

func (db *DB) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	query := `SELECT customer_id, customer_name, number_of_persons, contact_no, email, id_card_no, address, created_at
              FROM customer ORDER BY created_at DESC`
	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (db *DB) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	query := `UPDATE customer SET customer_name = ?, number_of_persons = ?, contact_no = ?,
              email = ?, id_card_no = ?, address = ?
              WHERE customer_id = ?`
	result, err := db.db.ExecContext(ctx, query,
		c.Name, c.Persons, c.ContactNo, c.Email, c.IDCardNo, c.Address, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// DeleteCustomer refuses while bookings reference the customer, keeping
// the booking joins intact.
func (db *DB) DeleteCustomer(ctx context.Context, id int64) error {
	var referenced int
	queryCount := `SELECT COUNT(*) FROM booking WHERE customer_id = ?`
	if err := db.db.QueryRowContext(ctx, queryCount, id).Scan(&referenced); err != nil {
		return fmt.Errorf("failed to count customer bookings: %w", err)
	}
	if referenced > 0 {
		return ErrBookingInUse
	}

	result, err := db.db.ExecContext(ctx, `DELETE FROM customer WHERE customer_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var (
		c                                   models.Customer
		contactNo, email, idCardNo, address sql.NullString
	)
	err := row.Scan(&c.ID, &c.Name, &c.Persons, &contactNo, &email, &idCardNo, &address, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ContactNo = contactNo.String
	c.Email = email.String
	c.IDCardNo = idCardNo.String
	c.Address = address.String
	return &c, nil
}
