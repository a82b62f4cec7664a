package settings

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

type Repository interface {
	Get(ctx context.Context) (model.StoreSettings, error)
	Save(ctx context.Context, s model.StoreSettings) error
}
