package server

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/bokysan/uucodec/internal/util/addr"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultMaxBodySize limits the size of request bodies, as both pipelines hold the whole
	// input and output in memory
	DefaultMaxBodySize = 32 << 20

	shutdownTimeout = 5 * time.Second
)

// HttpServer exposes the encoder and decoder over HTTP
type HttpServer struct {
	Address     string `json:"address"`
	MaxBodySize int64  `json:"max-body-size"`
	// TLS switches the server to HTTPS when set
	TLS *tls.Config `json:"-"`

	server   *http.Server
	listener net.Listener
}

func NewHttpServer(address string) *HttpServer {
	return &HttpServer{
		Address:     address,
		MaxBodySize: DefaultMaxBodySize,
	}
}

func (ws *HttpServer) String() string {
	scheme := "http://"
	if ws.TLS != nil {
		scheme = "https://"
	}
	if ws.listener != nil {
		return scheme + ws.listener.Addr().String()
	}
	return scheme + ws.Address
}

// Router returns the handler with all the endpoints and middleware
func (ws *HttpServer) Router(address *net.TCPAddr) http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID, // Set Request Id on all requests
		middleware.RealIP,    // Extract actual IP if running behind reverse proxy
		GetRequestLogger(address),
		middleware.Recoverer, // Recover from panics without crashing the server
	)

	h := &handlers{maxBodySize: ws.MaxBodySize}
	router.Get("/health", h.health)
	router.Post("/encode", h.encode)
	router.Post("/decode", h.decode)

	return router
}

// Startup starts listening and serves requests in the background
func (ws *HttpServer) Startup() error {
	address, err := addr.ResolveHostAddress(ws.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	ws.listener, err = net.Listen("tcp", address.String())
	if err != nil {
		return errors.Wrapf(err, "Could not listen on %v", address)
	}
	if ws.TLS != nil {
		ws.listener = tls.NewListener(ws.listener, ws.TLS)
	}

	ws.server = &http.Server{
		Handler:           ws.Router(address),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server at %v", ws)
		if err := ws.server.Serve(ws.listener); err != http.ErrServerClosed {
			err = errors.WithStack(err)
			log.WithError(err).Errorf("Could not start the server %v", err)
		}
	}()

	return nil
}

func (ws *HttpServer) Shutdown() error {
	if ws.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return ws.server.Shutdown(ctx)
}
