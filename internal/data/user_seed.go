package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"

	"github.com/target/timetracker/internal/data/pgxutil"
	domainauth "github.com/target/timetracker/internal/domain/auth"
)

// SeedUser is one entry of a users seed file.
type SeedUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// SeedFile is the YAML document accepted by SeedFromFile:
//
//	users:
//	  - username: admin
//	    email: admin@example.com
//	    password: Secret123
//	    role: ADMINISTRATOR
type SeedFile struct {
	Users []SeedUser `yaml:"users"`
}

// ParseSeedFile decodes and validates a seed document.
func ParseSeedFile(b []byte) (*SeedFile, error) {
	var sf SeedFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, u := range sf.Users {
		if strings.TrimSpace(u.Username) == "" {
			return nil, fmt.Errorf("seed user %d: %w", i, ErrUsernameInvalid)
		}
		if u.Password == "" {
			return nil, fmt.Errorf("seed user %q: %w", u.Username, ErrPasswordEmpty)
		}
		if u.Role == "" {
			sf.Users[i].Role = string(domainauth.DefaultRole)
		} else if _, err := domainauth.ParseRole(u.Role); err != nil {
			return nil, fmt.Errorf("seed user %q: %w", u.Username, err)
		}
	}
	return &sf, nil
}

// SeedFromFile upserts every user of the YAML file at path in a single transaction.
// Existing users keep their id and get the file's email, password and role.
func (r *UserRepo) SeedFromFile(ctx context.Context, path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	sf, err := ParseSeedFile(b)
	if err != nil {
		return 0, err
	}

	hashes := make([]string, len(sf.Users))
	for i, u := range sf.Users {
		if hashes[i], err = r.hash(u.Password); err != nil {
			return 0, err
		}
	}

	err = pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Opts: &sql.TxOptions{Isolation: sql.LevelReadCommitted},
		Fn: func(tx pgx.Tx) error {
			for i, u := range sf.Users {
				if _, execErr := tx.Exec(ctx, `
					INSERT INTO users (username, email, password, authority)
					VALUES ($1, $2, $3, $4)
					ON CONFLICT (username) DO UPDATE
					SET email = EXCLUDED.email, password = EXCLUDED.password, authority = EXCLUDED.authority`,
					strings.TrimSpace(u.Username), strings.TrimSpace(u.Email), hashes[i], u.Role,
				); execErr != nil {
					return fmt.Errorf("seed user %q: %w", u.Username, execErr)
				}
			}
			return nil
		},
	})
	if err != nil {
		return 0, err
	}
	slog.Default().InfoContext(ctx, "seeded users", "component", "seed", "count", len(sf.Users))
	return len(sf.Users), nil
}
