// Package logger provides structured logging for httpflow using
// zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("client")
//	log.Info("request complete", logger.Fields("status", 200))
package logger
