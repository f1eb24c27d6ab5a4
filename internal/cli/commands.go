package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/services"
)

// Credentials aliases the service-layer input so prompt helpers can build it
// directly.
type Credentials = services.Credentials

// CreateUser prompts for credentials and creates an ordinary account. The
// password may be left empty; such accounts get an unusable password and
// must have one set later.
func (a *App) CreateUser(ctx context.Context) error {
	creds, err := a.promptCredentials()
	if err != nil {
		return err
	}

	session, err := a.service.CreateAccount(ctx, creds)
	if err != nil {
		a.logger.Error(ctx, "account creation failed", "username", creds.Username, "err", err)
		return err
	}

	a.logger.Info(ctx, "account created", "username", session.Account.Username, "id", session.Account.ID)
	fmt.Fprintf(a.out, "Created account %d (%s)\nActivation token: %s\n",
		session.Account.ID, session.String(), session.Account.ActivationToken)
	return nil
}

// CreateSuperuser prompts for credentials and creates a staff + superuser
// account. Unlike CreateUser, the password is mandatory.
func (a *App) CreateSuperuser(ctx context.Context) error {
	creds, err := a.promptCredentials()
	if err != nil {
		return err
	}

	session, err := a.service.CreateSuperuser(ctx, creds)
	if err != nil {
		a.logger.Error(ctx, "superuser creation failed", "username", creds.Username, "err", err)
		return err
	}

	a.logger.Info(ctx, "superuser created", "username", session.Account.Username, "id", session.Account.ID)
	fmt.Fprintf(a.out, "Created superuser %d (%s)\n", session.Account.ID, session.String())
	return nil
}

// Activate marks the account holding the given activation token as active.
func (a *App) Activate(ctx context.Context, args []string) error {
	var token string
	var err error
	if len(args) > 0 {
		token = args[0]
	} else {
		token, err = GetSimpleText(a.reader, "Activation token", a.out)
		if err != nil {
			return err
		}
	}

	session, err := a.service.Activate(ctx, token)
	if err != nil {
		a.logger.Error(ctx, "activation failed", "err", err)
		return err
	}

	fmt.Fprintf(a.out, "Activated account %s\n", session.Account.Username)
	return nil
}

// Token issues and prints an identity token for the named account.
func (a *App) Token(ctx context.Context, args []string) error {
	var username string
	var err error
	if len(args) > 0 {
		username = args[0]
	} else {
		username, err = GetSimpleText(a.reader, "Username", a.out)
		if err != nil {
			return err
		}
	}

	session, err := a.service.GetByUsername(ctx, username)
	if err != nil {
		a.logger.Error(ctx, "account lookup failed", "username", username, "err", err)
		return err
	}

	token, err := session.IssueToken()
	if err != nil {
		a.logger.Error(ctx, "token issuance failed", "username", username, "err", err)
		return err
	}

	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) promptCredentials() (creds Credentials, err error) {
	if creds.Username, err = GetSimpleText(a.reader, "Username", a.out); err != nil {
		return creds, err
	}
	if creds.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return creds, err
	}
	if creds.Password, err = GetPassword("Password", a.out); err != nil {
		return creds, err
	}

	first, err := GetSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return creds, err
	}
	if first != "" {
		creds.FirstName = &first
	}
	last, err := GetSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return creds, err
	}
	if last != "" {
		creds.LastName = &last
	}

	return creds, nil
}
