// Package cli implements ledgerctl, the administrative command line that
// works directly against the ledger database.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/finkeeper/internal/netx"
	"github.com/dmitrijs2005/finkeeper/internal/server/auth"
	"github.com/dmitrijs2005/finkeeper/internal/server/config"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/finkeeper/internal/server/services"
)

var ErrUsage = errors.New("usage: ledgerctl [flags] migrate | register | balance <userID> | attach <releaseID> <file> | receipt <releaseID> | version")

type App struct {
	manager  repomanager.RepositoryManager
	users    *services.UserService
	releases *services.ReleaseService
	receipts *services.ReceiptService
	http     *http.Client
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(m repomanager.RepositoryManager, passwords auth.PasswordScheme, cfg *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		manager:  m,
		users:    services.NewUserService(m, passwords),
		releases: services.NewReleaseService(m),
		receipts: services.NewReceiptService(m, cfg),
		http:     http.DefaultClient,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run dispatches args[0] to the matching command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "migrate":
		return a.Migrate(ctx)
	case "register":
		return a.Register(ctx)
	case "balance":
		if len(args) < 2 {
			return ErrUsage
		}
		return a.Balance(ctx, args[1])
	case "attach":
		if len(args) < 3 {
			return ErrUsage
		}
		return a.Attach(ctx, args[1], args[2])
	case "receipt":
		if len(args) < 2 {
			return ErrUsage
		}
		return a.Receipt(ctx, args[1])
	}

	return fmt.Errorf("unknown command %q\n%w", args[0], ErrUsage)
}

func (a *App) Migrate(ctx context.Context) error {
	if err := a.manager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	fmt.Fprintln(a.out, "Migrations applied")
	return nil
}

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.users.Register(ctx, &models.User{Name: name, Email: email, Password: password})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered user %s (%s)\n", user.ID, user.Email)
	return nil
}

func (a *App) Balance(ctx context.Context, userID string) error {
	balance, err := a.releases.BalanceForUser(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Balance for %s: %s\n", userID, balance.StringFixed(2))
	return nil
}

// Attach uploads the file at path as the receipt of a release.
func (a *App) Attach(ctx context.Context, releaseID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read receipt: %w", err)
	}

	key, url, err := a.receipts.UploadURL(ctx, releaseID)
	if err != nil {
		return err
	}

	if err := netx.PutPresigned(ctx, a.http, url, http.DetectContentType(data), data); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Attached receipt %s to release %s\n", key, releaseID)
	return nil
}

func (a *App) Receipt(ctx context.Context, releaseID string) error {
	url, err := a.receipts.DownloadURL(ctx, releaseID)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, url)
	return nil
}
