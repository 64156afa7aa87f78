// Package logger builds *slog.Logger values for jwtlab commands and
// libraries.
//
// New applies a list of Option functions, picks slog.NewTextHandler or
// slog.NewJSONHandler and wraps the result in LogHandlerDecorator, which
// appends attributes extracted from the record's context.
//
// Output defaults to text on stderr so that stdout carries only command
// results. Attributes whose key is listed in DefaultRedactedKeys (or added
// with WithRedactedKeys) are written as RedactedValue; signing keys and
// recovered secrets never reach a log sink through this package.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "jwtlab"),
//	    logger.WithLevel(level),
//	    logger.WithContextValue("run_id", runIDKey{}),
//	)
//	log.Info("scan finished", logger.RunID(id), logger.Tried(n), logger.Duration(d))
//
// Attribute helpers such as Error, Component, Algorithm, RunID and Tried keep
// key names consistent. Error and Errors return an empty attribute for nil
// errors, so they can be passed unconditionally.
package logger
