package repository

import (
	"context"

	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/jmoiron/sqlx"
)

type SettingsRepository interface {
	// Set upserts a key/value pair: new keys insert, existing keys replace.
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

type SettingsRepositoryImpl struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepositoryImpl {
	return &SettingsRepositoryImpl{db: db}
}

var _ SettingsRepository = (*SettingsRepositoryImpl)(nil)

func (r *SettingsRepositoryImpl) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (r *SettingsRepositoryImpl) All(ctx context.Context) (map[string]string, error) {
	rows := []model.Setting{}
	if err := r.db.SelectContext(ctx, &rows, `SELECT key, value FROM settings`); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.Key] = s.Value
	}
	return out, nil
}
