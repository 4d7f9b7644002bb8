package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/model"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/negotiation"
)

// ReservationRepo persists negotiation records in the reservations table.
// It implements negotiation.Store.  Slot parts are stored in DATE and
// TIME columns and formatted back to strings in queries so the model
// never deals with driver time types.  All timestamps are UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, client_id, garage_id, vehicle_id, service_id,
       DATE_FORMAT(requested_date, '%Y-%m-%d'), TIME_FORMAT(requested_time, '%H:%i'),
       DATE_FORMAT(proposed_date, '%Y-%m-%d'), TIME_FORMAT(proposed_time, '%H:%i'),
       status, last_proposer, garage_message, client_message, description,
       created_at, updated_at, version`

// scanReservation maps one row onto a model.Reservation.  The proposed
// slot is reassembled only when both of its columns are non-null.
func scanReservation(row interface {
	Scan(dest ...interface{}) error
}) (model.Reservation, error) {
	var (
		rec          model.Reservation
		status       string
		lastProposer string
		propDate     sql.NullString
		propTime     sql.NullString
		garageMsg    sql.NullString
		clientMsg    sql.NullString
	)
	err := row.Scan(
		&rec.ID, &rec.ClientID, &rec.GarageID, &rec.VehicleID, &rec.ServiceID,
		&rec.RequestedSlot.Date, &rec.RequestedSlot.StartTime,
		&propDate, &propTime,
		&status, &lastProposer, &garageMsg, &clientMsg, &rec.Description,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.Version,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	st, err := model.ParseStatus(status)
	if err != nil {
		return model.Reservation{}, err
	}
	rec.Status = st
	rec.LastProposer = model.Role(lastProposer)
	if propDate.Valid && propTime.Valid {
		rec.ProposedSlot = &model.Slot{Date: propDate.String, StartTime: propTime.String}
	}
	if garageMsg.Valid {
		m := garageMsg.String
		rec.GarageMessage = &m
	}
	if clientMsg.Valid {
		m := clientMsg.String
		rec.ClientMessage = &m
	}
	return rec, nil
}

// GetByID loads one reservation.  Missing rows map to
// negotiation.ErrNotFound per the Store contract.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	rec, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, negotiation.ErrNotFound
	}
	return rec, err
}

// Insert stores a fresh reservation and returns it with the generated id
// and database-assigned timestamps.
func (r *ReservationRepo) Insert(ctx context.Context, rec model.Reservation) (model.Reservation, error) {
	const q = `INSERT INTO reservations
	           (client_id, garage_id, vehicle_id, service_id,
	            requested_date, requested_time, status, last_proposer,
	            client_message, description, version)
	           VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		rec.ClientID, rec.GarageID, rec.VehicleID, rec.ServiceID,
		rec.RequestedSlot.Date, rec.RequestedSlot.StartTime,
		string(rec.Status), string(rec.LastProposer),
		rec.ClientMessage, rec.Description, rec.Version,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Reservation{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// UpdateGuarded performs the optimistic write-back: the row is updated
// only when its stored version still equals expectedVersion.  Zero rows
// affected means another transition committed in between; the caller
// retries from a fresh read.
func (r *ReservationRepo) UpdateGuarded(ctx context.Context, rec model.Reservation, expectedVersion int64) (model.Reservation, error) {
	const q = `UPDATE reservations
	           SET requested_date = ?, requested_time = ?,
	               proposed_date = ?, proposed_time = ?,
	               status = ?, last_proposer = ?,
	               garage_message = ?, client_message = ?,
	               updated_at = ?, version = version + 1
	           WHERE id = ? AND version = ?`
	var propDate, propTime interface{}
	if rec.ProposedSlot != nil {
		propDate = rec.ProposedSlot.Date
		propTime = rec.ProposedSlot.StartTime
	}
	res, err := r.db.ExecContext(ctx, q,
		rec.RequestedSlot.Date, rec.RequestedSlot.StartTime,
		propDate, propTime,
		string(rec.Status), string(rec.LastProposer),
		rec.GarageMessage, rec.ClientMessage,
		rec.UpdatedAt, rec.ID, expectedVersion,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Reservation{}, err
	}
	if affected == 0 {
		return model.Reservation{}, negotiation.ErrStale
	}
	return r.GetByID(ctx, rec.ID)
}

// ListByClient returns the client's reservations, newest first.
func (r *ReservationRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations WHERE client_id = ?
	           ORDER BY created_at DESC`
	return r.list(ctx, q, clientID)
}

// ListByGarage returns the reservations addressed to a garage, newest first.
func (r *ReservationRepo) ListByGarage(ctx context.Context, garageID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations WHERE garage_id = ?
	           ORDER BY created_at DESC`
	return r.list(ctx, q, garageID)
}

func (r *ReservationRepo) list(ctx context.Context, q string, arg interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	recs := make([]model.Reservation, 0)
	for rows.Next() {
		rec, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
