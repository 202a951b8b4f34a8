package usecase

import (
	"catalog-web/internal/data/repository"
	"catalog-web/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Views *ViewStore
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Views: NewViewStore(repo, config, log),
	}
}
