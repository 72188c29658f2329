package get_public_services

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/service/catalog/models"
)

type CatalogService interface {
	ListPublic(ctx context.Context, businessID int64) ([]models.PublicServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
