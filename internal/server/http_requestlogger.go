package server

import (
	"net"
	"net/http"
	"strings"

	"github.com/bokysan/uucodec/internal/args"
	"github.com/bokysan/uucodec/internal/logging"
	"github.com/go-chi/chi/middleware"
)

type NextHandlerFunc func(next http.Handler) http.Handler

// GetRequestLogger returns the access log middleware matching the configured log format
func GetRequestLogger(address *net.TCPAddr) (logger NextHandlerFunc) {
	if args.General.LogFormat == "json" {
		logger = middleware.RequestLogger(
			&logging.JSONLogFormatter{
				ServerAddress: address,
			},
		)
	} else {
		color := strings.TrimSpace(strings.ToLower(args.General.LogColor))
		logger = middleware.RequestLogger(
			&middleware.DefaultLogFormatter{
				Logger:  &logging.ChiLogWriter{},
				NoColor: color == "no" || color == "false" || color == "0",
			},
		)
	}

	return
}
