package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/target/timetracker/internal/adapters/redis"
	"github.com/target/timetracker/internal/bootstrap"
	"github.com/target/timetracker/internal/data"
	domainauth "github.com/target/timetracker/internal/domain/auth"
	"github.com/target/timetracker/internal/domain/model"
	"github.com/target/timetracker/internal/service"
)

const defaultCommandTimeout = 5 * time.Minute

type migrateOptions struct {
	Timeout time.Duration
}

type createUserOptions struct {
	Username string
	Email    string
	Password string
	Role     string
}

type setRoleOptions struct {
	UserID int64
	Role   string
}

type deleteUserOptions struct {
	UserID int64
}

type seedOptions struct {
	File string
}

type unlockOptions struct {
	Username string
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	opts := migrateOptions{}
	fs := newFlagSet("migrate")
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "maximum time to wait for migrations")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Timeout <= 0 {
		return opts, errors.New("timeout must be positive")
	}
	return opts, nil
}

func parseCreateUserFlags(args []string) (createUserOptions, error) {
	opts := createUserOptions{}
	fs := newFlagSet("create-user")
	fs.StringVar(&opts.Username, "username", "", "login name")
	fs.StringVar(&opts.Email, "email", "", "email address")
	fs.StringVar(&opts.Password, "password", "", "password; read from stdin when empty")
	fs.StringVar(&opts.Role, "role", "EMPLOYEE", "EMPLOYEE or ADMINISTRATOR")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.Username = strings.TrimSpace(opts.Username)
	if opts.Username == "" {
		return opts, errors.New("-username is required")
	}
	opts.Role = strings.ToUpper(strings.TrimSpace(opts.Role))
	return opts, nil
}

func parseSetRoleFlags(args []string) (setRoleOptions, error) {
	opts := setRoleOptions{}
	fs := newFlagSet("set-role")
	fs.Int64Var(&opts.UserID, "user-id", 0, "user id")
	fs.StringVar(&opts.Role, "role", "", "EMPLOYEE or ADMINISTRATOR")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.UserID <= 0 {
		return opts, errors.New("-user-id must be positive")
	}
	opts.Role = strings.ToUpper(strings.TrimSpace(opts.Role))
	if opts.Role == "" {
		return opts, errors.New("-role is required")
	}
	return opts, nil
}

func parseDeleteUserFlags(args []string) (deleteUserOptions, error) {
	opts := deleteUserOptions{}
	fs := newFlagSet("delete-user")
	fs.Int64Var(&opts.UserID, "user-id", 0, "user id")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.UserID <= 0 {
		return opts, errors.New("-user-id must be positive")
	}
	return opts, nil
}

func parseSeedFlags(args []string) (seedOptions, error) {
	opts := seedOptions{}
	fs := newFlagSet("seed-users")
	fs.StringVar(&opts.File, "file", "", "path to the YAML seed file")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if strings.TrimSpace(opts.File) == "" {
		return opts, errors.New("-file is required")
	}
	return opts, nil
}

func parseUnlockFlags(args []string) (unlockOptions, error) {
	opts := unlockOptions{}
	fs := newFlagSet("unlock-user")
	fs.StringVar(&opts.Username, "username", "", "login name")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.Username = strings.TrimSpace(opts.Username)
	if opts.Username == "" {
		return opts, errors.New("-username is required")
	}
	return opts, nil
}

// readPassword reads one line from r.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password is required")
	}
	return pw, nil
}

// withDatabase runs fn with a connected database and a signal-aware deadline.
func withDatabase(cmdCtx *commandContext, timeout time.Duration, fn func(ctx context.Context, db *sql.DB) error) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	return fn(ctx, db)
}

func newUserService(cmdCtx *commandContext, db *sql.DB) *service.UserService {
	return service.NewUserService(service.UserServiceOptions{
		Users: data.NewUserRepo(db),
		Entries: service.NewEntryService(service.EntryServiceOptions{
			TimeEntries:    data.NewTimeEntryRepo(db),
			AbsenceEntries: data.NewAbsenceEntryRepo(db),
			Logger:         cmdCtx.Logger,
		}),
		Logger: cmdCtx.Logger,
	})
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}
	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.InfoContext(ctx, "running database migrations")
		return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
	})
}

func runCreateUser(cmdCtx *commandContext, args []string) error {
	opts, err := parseCreateUserFlags(args)
	if err != nil {
		return err
	}
	if opts.Password == "" {
		if opts.Password, err = readPassword(os.Stdin); err != nil {
			return err
		}
	}
	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		u, createErr := newUserService(cmdCtx, db).Create(ctx, model.CreateUserRequest{
			Username: opts.Username,
			Email:    opts.Email,
			Password: opts.Password,
			Role:     domainauth.Role(opts.Role),
		})
		if createErr != nil {
			return createErr
		}
		_, err := fmt.Fprintf(cmdCtx.Out, "created user %d (%s, %s)\n", u.ID, u.Username, u.Authority)
		return err
	})
}

func runSetRole(cmdCtx *commandContext, args []string) error {
	opts, err := parseSetRoleFlags(args)
	if err != nil {
		return err
	}
	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		if err := newUserService(cmdCtx, db).UpdateAuthority(ctx, opts.UserID, opts.Role); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmdCtx.Out, "user %d is now %s\n", opts.UserID, opts.Role)
		return err
	})
}

func runDeleteUser(cmdCtx *commandContext, args []string) error {
	opts, err := parseDeleteUserFlags(args)
	if err != nil {
		return err
	}
	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		if err := newUserService(cmdCtx, db).Delete(ctx, opts.UserID); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmdCtx.Out, "deleted user %d\n", opts.UserID)
		return err
	})
}

func runListUsers(cmdCtx *commandContext, _ []string) error {
	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		users, err := newUserService(cmdCtx, db).List(ctx)
		if err != nil {
			return err
		}
		return writeUsers(cmdCtx.Out, users)
	})
}

func writeUsers(w io.Writer, users []*model.UserInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tAUTHORITY"); err != nil {
		return err
	}
	for _, u := range users {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Authority); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runSeedUsers(cmdCtx *commandContext, args []string) error {
	opts, err := parseSeedFlags(args)
	if err != nil {
		return err
	}
	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		n, seedErr := data.NewUserRepo(db).SeedFromFile(ctx, opts.File)
		if seedErr != nil {
			return seedErr
		}
		_, err := fmt.Fprintf(cmdCtx.Out, "seeded %d users from %s\n", n, opts.File)
		return err
	})
}

func runUnlockUser(cmdCtx *commandContext, args []string) error {
	opts, err := parseUnlockFlags(args)
	if err != nil {
		return err
	}
	if !cmdCtx.Config.Redis.Enabled {
		return errors.New("redis is disabled; there is nothing to unlock")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, time.Minute)
	defer cancel()

	client, err := bootstrap.ConnectRedis(ctx, bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	throttle, err := redis.NewLoginThrottle(client, redis.LoginThrottleOptions{
		MaxAttempts: cmdCtx.Config.LoginThrottle.MaxAttempts,
		Window:      cmdCtx.Config.LoginThrottle.Window,
	})
	if err != nil {
		return err
	}
	if err := throttle.Reset(ctx, opts.Username); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	_, err = fmt.Fprintf(cmdCtx.Out, "cleared failed logins for %s\n", opts.Username)
	return err
}
