package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/workshop-hub-api/internal/models"
)

// RegistrationRepository persists submitted registrations in PostgreSQL.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository creates the repository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a registration.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	query := `INSERT INTO registrations (id, first_name, last_name, email, phone, organization, role, experience, code_hash, created_at)
VALUES (:id, :first_name, :last_name, :email, :phone, :organization, :role, :experience, :code_hash, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reg); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// FindByID loads a registration by id.
func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	var reg models.Registration
	query := `SELECT id, first_name, last_name, email, phone, organization, role, experience, code_hash, created_at FROM registrations WHERE id = $1`
	if err := r.db.GetContext(ctx, &reg, query, id); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Count returns the number of stored registrations.
func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM registrations`); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return total, nil
}

// MemoryRegistrationRepository keeps registrations in process when no database is configured.
type MemoryRegistrationRepository struct {
	mu   sync.RWMutex
	rows map[string]models.Registration
}

// NewMemoryRegistrationRepository creates an empty in-memory repository.
func NewMemoryRegistrationRepository() *MemoryRegistrationRepository {
	return &MemoryRegistrationRepository{rows: make(map[string]models.Registration)}
}

// Create stores a registration.
func (r *MemoryRegistrationRepository) Create(_ context.Context, reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rows[reg.ID]; exists {
		return fmt.Errorf("create registration: duplicate id %s", reg.ID)
	}
	r.rows[reg.ID] = *reg
	return nil
}

// Count returns the number of stored registrations.
func (r *MemoryRegistrationRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows), nil
}
