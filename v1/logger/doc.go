// Package logger provides structured logging built on Uber's Zap.
//
// Every other package in this module declares its own narrow Logger
// interface with the same method set as *Logger, so the concrete client can
// be passed anywhere without adapters:
//
//	type Logger interface {
//		Info(msg string, err error, fields ...map[string]interface{})
//		Debug(msg string, err error, fields ...map[string]interface{})
//		Warn(msg string, err error, fields ...map[string]interface{})
//		Error(msg string, err error, fields ...map[string]interface{})
//		Fatal(msg string, err error, fields ...map[string]interface{})
//	}
//
// # Direct Usage
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		EnableTracing: true,
//		ServiceName:   "jsondb",
//	})
//
//	log.Info("Store opened", nil, map[string]interface{}{
//		"collections": 3,
//	})
//
//	// Adds trace_id and span_id when ctx carries a span
//	log.ErrorWithContext(ctx, "Query rejected", err, nil)
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Debug}
//		}),
//	)
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_ENABLE_TRACING=true      # add trace/span IDs to *WithContext entries
//	LOGGER_SERVICE_NAME=jsondb      # "service" field on every entry
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
