// Package logger provides structured logging for seqkit using zerolog.
//
// Library code never logs errors it returns; it logs subscription lifecycle
// and bridge bookkeeping at debug level through component loggers.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("blocking")
//	log.Debug("subscribed", logger.Fields(logger.FieldOperation, "first"))
//
// Tests and embedders can route a component elsewhere:
//
//	logger.Register("blocking", logger.NewWithWriter(&cfg, &buf, "test"))
package logger
