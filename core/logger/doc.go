// Package logger builds slog loggers and provides nil-safe attribute helpers.
//
//	log := logger.New(logger.WithDevelopment("marketplace"))
//	log.Info("booking created", logger.Component("composer"), logger.BookingID(id))
//	log.Error("backend unreachable", logger.Error(err))
//
// Helpers return an empty slog.Attr for empty input, which slog drops, so call
// sites never guard against nil errors or blank identifiers.
package logger
