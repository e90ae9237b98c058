package registrations

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	query := `
		INSERT INTO registrations (id, user_id, event_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query, reg.ID, reg.UserID, reg.EventID).Scan(&reg.CreatedAt); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return reg, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, eventID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Registration, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.created_at,
		       e.title, e.description, e.category, e.date, e.time, e.location, e.organizer, e.price, e.image_url, e.created_at
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY e.date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Registration
	for rows.Next() {
		reg := &models.Registration{Event: &models.Event{}}
		e := reg.Event
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.CreatedAt,
			&e.Title, &e.Description, &e.Category, &e.Date, &e.Time, &e.Location, &e.Organizer, &e.Price, &e.ImageURL, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.ID = reg.EventID
		result = append(result, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Registration, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.created_at,
		       u.email, p.role, p.full_name, p.phone
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		JOIN profiles p ON p.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Registration
	for rows.Next() {
		reg := &models.Registration{Profile: &models.Profile{}}
		p := reg.Profile
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.CreatedAt,
			&p.Email, &p.Role, &p.FullName, &p.Phone,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.ID = reg.UserID
		result = append(result, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
