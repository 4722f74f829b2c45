// Package logging provides structured logging utilities with context propagation.
//
// Each sync run is started with StartRun, which stores a logger carrying the run id
// in the context. Code deeper in the call chain retrieves it with FromContext.
//
//	ctx, runID := logging.StartRun(ctx, logger, "market_sync")
//	logging.FromContext(ctx).Info("sync started")
package logging
