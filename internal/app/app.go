package app

import (
	"log/slog"

	"hkt-hw/config"
	"hkt-hw/internal/hkt"
)

type App struct {
	Params     hkt.Params
	StorageApp *StorageApp
}

func New(log *slog.Logger, cfg *config.Config) *App {
	storageApp, err := NewStorageApp(log, cfg.StoragePath)
	if err != nil {
		panic(err)
	}

	params := hkt.Params{
		MinimumThresholdAgainstMaxWordCount: cfg.Build.MinimumThresholdAgainstMaxWordCount,
		SimilarityThreshold:                 cfg.Build.SimilarityThreshold,
		MinimumSourcesImportant:             cfg.Build.MinimumSourcesImportant,
		MinimumSourcesBranch:                cfg.Build.MinimumSourcesBranch,
	}

	return &App{
		Params:     params,
		StorageApp: storageApp,
	}
}
