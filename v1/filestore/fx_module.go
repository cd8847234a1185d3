package filestore

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
	"github.com/Aleph-Alpha/jsondb/v1/logger"
)

// FXModule provides the file backend as collection.Backend.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    filestore.FXModule,
//	    collection.FXModule,
//	    fx.Provide(func() filestore.Config { return filestore.Config{Directory: "./data"} }),
//	)
var FXModule = fx.Module("filestore",
	fx.Provide(
		newBackendWithDI,
		func(b *Backend) collection.Backend { return b },
	),
)

func newBackendWithDI(cfg Config, log *logger.Logger) (*Backend, error) {
	return New(cfg, log)
}
