// Package log provides the capture log for the NVM Express example programs.
//
// Example programs tag each request with a 16-bit identifier (see
// exutil.RandomID). The capture log records what was done under each tag:
// controller records obtained, numbers parsed, reports printed, errors.
// It is separate from operational logging (slog); the capture is a
// machine-readable trace that can be replayed and filtered later.
//
// # Basic Usage
//
//	logger, _ := log.NewFileLogger("identify.nlog")
//	defer logger.Close()
//
//	session := log.NewSession("nvm-identify", log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    logger,
//	))
//	session.LogIdentify(exutil.RandomID(), "ctrl.yaml", info)
//
// # File Format
//
// Log files are a stream of CBOR-encoded Event values with integer keys,
// conventionally with the .nlog extension. The nvm-log command views them.
package log
