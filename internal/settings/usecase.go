package settings

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

type UseCase interface {
	GetSettings(ctx context.Context) (model.StoreSettings, error)
	UpdateSettings(ctx context.Context, s model.StoreSettings) (model.StoreSettings, error)
}
