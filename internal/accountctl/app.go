// Package accountctl implements the operator commands that manage accounts
// directly in the store: creating pre-verified (typically admin) accounts,
// changing roles and deleting accounts.
package accountctl

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/flagx"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
)

const Usage = `usage: accountctl <command> [flags]

commands:
  create -email EMAIL -name NAME [-role admin|instructor|student]
  role   -email EMAIL -role ROLE
  delete -email EMAIL

store flags: -d DSN, -c config.json`

var ErrUsage = errors.New("invalid usage")

type App struct {
	repo  accounts.Repository
	creds *services.CredentialStore
	out   io.Writer
}

func NewApp(repo accounts.Repository, creds *services.CredentialStore, out io.Writer) *App {
	return &App{repo: repo, creds: creds, out: out}
}

type commandFlags struct {
	email string
	name  string
	role  string
}

func parseCommandFlags(name string, args []string, defaultRole string) (*commandFlags, error) {
	cf := &commandFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cf.email, "email", "", "account email")
	fs.StringVar(&cf.name, "name", "", "display name")
	fs.StringVar(&cf.role, "role", defaultRole, "role")

	if err := fs.Parse(flagx.FilterFor(fs, args)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if cf.email == "" {
		return nil, fmt.Errorf("%w: -email is required", ErrUsage)
	}
	return cf, nil
}

// Run executes the command named by args[0]. Flags for the store are
// expected to have been consumed by the caller; they are ignored here.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "create":
		return a.create(ctx, args[1:])
	case "role":
		return a.setRole(ctx, args[1:])
	case "delete":
		return a.delete(ctx, args[1:])
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func (a *App) create(ctx context.Context, args []string) error {
	cf, err := parseCommandFlags("create", args, string(models.RoleAdmin))
	if err != nil {
		return err
	}
	if cf.name == "" {
		return fmt.Errorf("%w: -name is required", ErrUsage)
	}
	role, err := models.ParseRole(cf.role)
	if err != nil {
		return err
	}

	pw, err := getNewPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	acc, err := a.creds.Create(ctx, a.repo, services.NewAccount{
		DisplayName: cf.name,
		Email:       cf.email,
		Password:    string(pw),
		Role:        role,
		Verified:    true,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "created %s (%s) id=%s\n", acc.Email, acc.Role, acc.ID)
	return nil
}

func (a *App) find(ctx context.Context, email string) (*models.Account, error) {
	acc, err := a.repo.FindByEmail(ctx, models.NormalizeEmail(email))
	if errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("no account with email %q", email)
	}
	return acc, err
}

func (a *App) setRole(ctx context.Context, args []string) error {
	cf, err := parseCommandFlags("role", args, "")
	if err != nil {
		return err
	}
	role, err := models.ParseRole(cf.role)
	if err != nil || cf.role == "" {
		return fmt.Errorf("%w: -role must be one of student, instructor, admin", ErrUsage)
	}

	acc, err := a.find(ctx, cf.email)
	if err != nil {
		return err
	}
	acc, err = a.creds.SetRole(ctx, a.repo, acc.ID, role)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s is now %s\n", acc.Email, acc.Role)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	cf, err := parseCommandFlags("delete", args, "")
	if err != nil {
		return err
	}

	acc, err := a.find(ctx, cf.email)
	if err != nil {
		return err
	}
	if err := a.repo.Delete(ctx, acc.ID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "deleted %s\n", acc.Email)
	return nil
}
