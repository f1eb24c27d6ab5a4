package accounts

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/models"
)

// Repository persists accounts. Create must detect uniqueness violations on
// username and email atomically with the insert and surface them as
// common.ErrDuplicateUsername / common.ErrDuplicateEmail, even when two
// concurrent creations race on the same key.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByActivationToken(ctx context.Context, token string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
}
