package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotelier/internal/models"
)

const roomDetailColumns = `r.room_id, r.room_no, r.room_type_id, r.status,
               r.check_in_status, r.check_out_status,
               rt.room_type, rt.price, rt.max_person`

const roomDetailJoins = `FROM room r
        JOIN room_type rt ON r.room_type_id = rt.room_type_id`

func (db *DB) CreateRoom(ctx context.Context, room *models.Room) error {
	query := `INSERT INTO room (room_no, room_type_id) VALUES (?, ?)`
	result, err := db.db.ExecContext(ctx, query, room.RoomNo, room.RoomTypeID)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}
	room.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	return nil
}

func (db *DB) GetRoom(ctx context.Context, id int64) (*models.RoomDetail, error) {
	query := `SELECT ` + roomDetailColumns + ` ` + roomDetailJoins + `
        WHERE r.room_id = ? AND r.delete_status = 0`
	row := db.db.QueryRowContext(ctx, query, id)

	detail, err := scanRoomDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return detail, nil
}

func (db *DB) ListRooms(ctx context.Context) ([]*models.RoomDetail, error) {
	query := `SELECT ` + roomDetailColumns + ` ` + roomDetailJoins + `
        WHERE r.delete_status = 0
        ORDER BY r.room_no`
	return db.queryRoomDetails(ctx, query)
}

// ListAvailableRooms returns rooms nobody currently occupies. Future-dated
// bookings do not affect it; only a check-in claims a room.
func (db *DB) ListAvailableRooms(ctx context.Context) ([]*models.RoomDetail, error) {
	query := `SELECT ` + roomDetailColumns + ` ` + roomDetailJoins + `
        WHERE r.status IS NULL AND r.delete_status = 0
        ORDER BY r.room_no`
	return db.queryRoomDetails(ctx, query)
}

func (db *DB) UpdateRoom(ctx context.Context, room *models.Room) error {
	query := `UPDATE room SET room_no = ?, room_type_id = ?
              WHERE room_id = ? AND delete_status = 0`
	result, err := db.db.ExecContext(ctx, query, room.RoomNo, room.RoomTypeID, room.ID)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// DeleteRoom soft-deletes so historical bookings keep a valid join target.
// An occupied room cannot be deleted.
func (db *DB) DeleteRoom(ctx context.Context, id int64) error {
	query := `UPDATE room SET delete_status = 1
              WHERE room_id = ? AND delete_status = 0 AND status IS NULL`
	result, err := db.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (db *DB) CreateRoomType(ctx context.Context, rt *models.RoomType) error {
	query := `INSERT INTO room_type (room_type, price, max_person) VALUES (?, ?, ?)`
	result, err := db.db.ExecContext(ctx, query, rt.Name, rt.Price, rt.MaxPerson)
	if err != nil {
		return fmt.Errorf("failed to insert room type: %w", err)
	}
	rt.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	return nil
}

func (db *DB) GetRoomType(ctx context.Context, id int64) (*models.RoomType, error) {
	query := `SELECT room_type_id, room_type, price, max_person FROM room_type WHERE room_type_id = ?`
	var rt models.RoomType
	err := db.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.Name, &rt.Price, &rt.MaxPerson)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room type: %w", err)
	}
	return &rt, nil
}

func (db *DB) ListRoomTypes(ctx context.Context) ([]*models.RoomType, error) {
	query := `SELECT room_type_id, room_type, price, max_person FROM room_type ORDER BY room_type`
	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query room types: %w", err)
	}
	defer rows.Close()

	var types []*models.RoomType
	for rows.Next() {
		var rt models.RoomType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Price, &rt.MaxPerson); err != nil {
			return nil, fmt.Errorf("failed to scan room type: %w", err)
		}
		types = append(types, &rt)
	}
	return types, rows.Err()
}

func (db *DB) UpdateRoomType(ctx context.Context, rt *models.RoomType) error {
	query := `UPDATE room_type SET room_type = ?, price = ?, max_person = ? WHERE room_type_id = ?`
	result, err := db.db.ExecContext(ctx, query, rt.Name, rt.Price, rt.MaxPerson, rt.ID)
	if err != nil {
		return fmt.Errorf("failed to update room type: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}

func (db *DB) DeleteRoomType(ctx context.Context, id int64) error {
	var inUse int
	queryCount := `SELECT COUNT(*) FROM room WHERE room_type_id = ? AND delete_status = 0`
	if err := db.db.QueryRowContext(ctx, queryCount, id).Scan(&inUse); err != nil {
		return fmt.Errorf("failed to count rooms for type: %w", err)
	}
	if inUse > 0 {
		return ErrRoomTypeInUse
	}

	result, err := db.db.ExecContext(ctx, `DELETE FROM room_type WHERE room_type_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room type: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}

func (db *DB) queryRoomDetails(ctx context.Context, query string, args ...any) ([]*models.RoomDetail, error) {
	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var details []*models.RoomDetail
	for rows.Next() {
		detail, err := scanRoomDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

func scanRoomDetail(row rowScanner) (*models.RoomDetail, error) {
	var (
		d        models.RoomDetail
		occupied sql.NullBool
	)
	err := row.Scan(
		&d.ID, &d.RoomNo, &d.RoomTypeID, &occupied,
		&d.CheckedIn, &d.CheckedOut,
		&d.RoomType, &d.Price, &d.MaxPerson,
	)
	if err != nil {
		return nil, err
	}
	d.Occupied = occupied.Valid && occupied.Bool
	return &d, nil
}
