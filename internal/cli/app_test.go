package cli

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authkeeper/internal/config"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/accounts"
	"github.com/dmitrijs2005/authkeeper/internal/services"
	"golang.org/x/crypto/bcrypt"
)

type stubRepoManager struct {
	accounts *accounts.InMemoryRepository
}

func (m *stubRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *stubRepoManager) Accounts(db dbx.DBTX) accounts.Repository     { return m.accounts }

func newTestApp(t *testing.T, stdin string) (*App, *accounts.InMemoryRepository, *bytes.Buffer, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := accounts.NewInMemoryRepository()
	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: 60 * 24 * time.Hour,
		BcryptCost:            bcrypt.MinCost,
	}
	service := services.NewAccountService(db, &stubRepoManager{accounts: repo}, cfg)

	var out bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&out, nil)))
	app := NewApp(service, logger, strings.NewReader(stdin), &out)
	return app, repo, &out, mock
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _, _, _ := newTestApp(t, "")

	if err := app.Run(context.Background(), []string{"frobnicate"}); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestRun_NoCommand(t *testing.T) {
	app, _, out, _ := newTestApp(t, "")

	if err := app.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for missing command")
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("usage not printed")
	}
}

func TestCreateUser_EndToEnd(t *testing.T) {
	// username, email, first name, last name (password comes from the seam)
	app, repo, out, _ := newTestApp(t, "ada\nAda@EXAMPLE.com\nAda\nLovelace\n")
	stubPassword(t, "pw")

	if err := app.Run(context.Background(), []string{"createuser"}); err != nil {
		t.Fatalf("createuser error: %v", err)
	}

	stored, err := repo.GetByUsername(context.Background(), "ada")
	if err != nil {
		t.Fatalf("account not stored: %v", err)
	}
	if stored.Email != "Ada@example.com" {
		t.Fatalf("email not normalized: %q", stored.Email)
	}
	if stored.IsActive || stored.IsStaff || stored.IsSuperuser {
		t.Fatalf("unexpected flags: %+v", stored)
	}
	if !strings.Contains(out.String(), "Activation token:") {
		t.Fatalf("activation token not printed:\n%s", out.String())
	}
}

func TestCreateSuperuser_EndToEnd(t *testing.T) {
	app, repo, _, mock := newTestApp(t, "root\nroot@example.com\n\n\n")
	stubPassword(t, "pw")

	mock.ExpectBegin()
	mock.ExpectCommit()

	if err := app.Run(context.Background(), []string{"createsuperuser"}); err != nil {
		t.Fatalf("createsuperuser error: %v", err)
	}

	stored, err := repo.GetByUsername(context.Background(), "root")
	if err != nil {
		t.Fatalf("account not stored: %v", err)
	}
	if !stored.IsSuperuser || !stored.IsStaff {
		t.Fatalf("superuser flags not set: %+v", stored)
	}
}

func TestCreateSuperuser_MissingPassword(t *testing.T) {
	app, _, _, _ := newTestApp(t, "root\nroot@example.com\n\n\n")
	stubPassword(t, "")

	if err := app.Run(context.Background(), []string{"createsuperuser"}); err == nil {
		t.Fatalf("expected error when password empty")
	}
}

func TestActivateAndToken_EndToEnd(t *testing.T) {
	app, repo, out, _ := newTestApp(t, "ada\nada@example.com\n\n\n")
	stubPassword(t, "pw")
	ctx := context.Background()

	if err := app.Run(ctx, []string{"createuser"}); err != nil {
		t.Fatalf("createuser error: %v", err)
	}

	stored, err := repo.GetByUsername(ctx, "ada")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	if err := app.Run(ctx, []string{"activate", stored.ActivationToken}); err != nil {
		t.Fatalf("activate error: %v", err)
	}
	activated, _ := repo.GetByUsername(ctx, "ada")
	if !activated.IsActive {
		t.Fatalf("account not activated")
	}

	out.Reset()
	if err := app.Run(ctx, []string{"token", "ada"}); err != nil {
		t.Fatalf("token error: %v", err)
	}
	// A JWT has two dots.
	if got := strings.TrimSpace(out.String()); strings.Count(got, ".") < 2 {
		t.Fatalf("expected a token in output, got %q", got)
	}
}

func TestToken_UnknownUser(t *testing.T) {
	app, _, _, _ := newTestApp(t, "")

	if err := app.Run(context.Background(), []string{"token", "ghost"}); err == nil {
		t.Fatalf("expected error for unknown user")
	}
}
