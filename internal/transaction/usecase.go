package transaction

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/transaction/dto"
)

type UseCase interface {
	Checkout(ctx context.Context, input *dto.CheckoutInput) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.Transaction, int, error)
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
}
