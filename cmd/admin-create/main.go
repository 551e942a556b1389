package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobboard.backend/internal/config"
	"jobboard.backend/internal/domain/entities"
	domainerrors "jobboard.backend/internal/domain/errors"
	"jobboard.backend/internal/infrastructure/repositories"
	"jobboard.backend/pkg/crypto"
)

const minPasswordLength = 6

var openAdminDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
	})
}

var openAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

// accountCreator is the slice of the credential store this command writes through
type accountCreator interface {
	Create(ctx context.Context, user *entities.User) error
}

type adminCreateDeps struct {
	loadEnv      func() error
	loadCfg      func() *config.Config
	prepare      func(cfg *config.Config) (accountCreator, io.Closer, error)
	hashPassword func(password string) (string, error)
	getenv       func(key string) string
	out          io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultAdminCreateDeps() adminCreateDeps {
	return adminCreateDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (accountCreator, io.Closer, error) {
			db, err := openAdminDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			if err := repositories.AutoMigrate(db); err != nil {
				_ = sqlDB.Close()
				return nil, nil, fmt.Errorf("failed to migrate db: %w", err)
			}

			return repositories.NewUserRepository(db), sqlDB, nil
		},
		hashPassword: crypto.HashPassword,
		getenv:       os.Getenv,
		out:          os.Stdout,
	}
}

type adminFlags struct {
	email    string
	name     string
	password string
}

func parseAdminFlags(args []string, getenv func(string) string) (adminFlags, error) {
	fs := flag.NewFlagSet("admin-create", flag.ContinueOnError)
	email := fs.String("email", "", "admin email (required)")
	name := fs.String("name", "Administrator", "admin display name")
	password := fs.String("password", "", "admin password (defaults to $ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return adminFlags{}, err
	}

	f := adminFlags{
		email:    strings.ToLower(strings.TrimSpace(*email)),
		name:     strings.TrimSpace(*name),
		password: *password,
	}
	if f.password == "" {
		f.password = getenv("ADMIN_PASSWORD")
	}

	if f.email == "" || !strings.Contains(f.email, "@") {
		return adminFlags{}, errors.New("--email is required and must be an email address")
	}
	if f.name == "" {
		return adminFlags{}, errors.New("--name must not be empty")
	}
	if len(f.password) < minPasswordLength {
		return adminFlags{}, fmt.Errorf("password must be at least %d characters (--password or ADMIN_PASSWORD)", minPasswordLength)
	}
	return f, nil
}

func runAdminCreate(args []string, deps adminCreateDeps) error {
	def := defaultAdminCreateDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.hashPassword == nil {
		deps.hashPassword = def.hashPassword
	}
	if deps.getenv == nil {
		deps.getenv = def.getenv
	}
	if deps.out == nil {
		deps.out = def.out
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	flags, err := parseAdminFlags(args, deps.getenv)
	if err != nil {
		return err
	}

	hash, err := deps.hashPassword(flags.password)
	if err != nil {
		return err
	}

	cfg := deps.loadCfg()
	store, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	admin := &entities.User{
		Name:         flags.name,
		Email:        flags.email,
		PasswordHash: hash,
		Role:         entities.UserRoleAdmin,
		IsVerified:   true,
		IsApproved:   true,
	}
	if err := store.Create(context.Background(), admin); err != nil {
		if errors.Is(err, domainerrors.ErrEmailTaken) {
			return fmt.Errorf("an account with email %s already exists", flags.email)
		}
		return fmt.Errorf("failed creating admin: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created ADMIN account")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", admin.ID.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", admin.Email)
	return nil
}

func main() {
	if err := runAdminCreate(os.Args[1:], defaultAdminCreateDeps()); err != nil {
		log.Fatal(err)
	}
}
