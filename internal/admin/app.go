// Package admin implements the operator command line used to seed users
// directly into the configured storage.
package admin

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/blogkeeper/internal/flagx"
	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/server/config"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogkeeper/internal/server/services"
)

const usage = "usage: admin create-user -u <username> -e <email> [storage flags]"

var ErrUsage = errors.New(usage)

type App struct {
	in    *bufio.Reader
	out   io.Writer
	users *services.UserService
}

// Run executes one admin command. args excludes the program name.
func Run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "create-user":
		return withApp(ctx, args[1:], in, out, func(a *App) error {
			return a.createUser(ctx, args[1:])
		})
	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], ErrUsage)
	}
}

func withApp(ctx context.Context, args []string, in io.Reader, out io.Writer, fn func(*App) error) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	rm, err := repomanager.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}
	defer rm.Close(ctx)

	if err := rm.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	logger := logging.Nop{}
	tokens := auth.NewTokenService(cfg, rm.RefreshTokens())

	a := &App{
		in:    bufio.NewReader(in),
		out:   out,
		users: services.NewUserService(rm, tokens, logger),
	}
	return fn(a)
}

func (a *App) createUser(ctx context.Context, args []string) error {
	var userName, email string

	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&userName, "u", "", "username")
	fs.StringVar(&email, "e", "", "email")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-u", "-e"})); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	var err error
	if userName == "" {
		if userName, err = GetSimpleText(a.in, "Enter username", a.out); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = GetSimpleText(a.in, "Enter email", a.out); err != nil {
			return err
		}
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	u, err := a.users.Create(ctx, userName, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User %s created with id %s\n", u.UserName, u.ID)
	return nil
}
