package clients

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PGStore loads clients from Postgres for deployments that have outgrown
// the flat file. Tags are stored comma-joined, same as the file format.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Load(ctx context.Context) ([]Client, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT first_name, last_name, email, phone, county, tags, created_on
		FROM clients
		ORDER BY created_on, email`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var list []Client
	for rows.Next() {
		var c Client
		var email, phone, county, tags sql.NullString
		if err := rows.Scan(&c.FirstName, &c.LastName, &email, &phone, &county, &tags, &c.CreatedOn); err != nil {
			return nil, fmt.Errorf("scan client row: %w", err)
		}
		c.Email = email.String
		c.Phone = phone.String
		c.County = county.String
		if tags.Valid && tags.String != "" {
			c.Tags = trimAll(strings.Split(tags.String, ","))
		}
		list = append(list, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client rows: %w", err)
	}

	return list, nil
}
