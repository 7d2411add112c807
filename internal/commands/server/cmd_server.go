package server

import (
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/bokysan/uucodec/internal/logging"
	"github.com/bokysan/uucodec/internal/server"
	"github.com/bokysan/uucodec/internal/util/cert"
	"github.com/bokysan/uucodec/internal/util/mime"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Command struct {
	Listen      []string `json:"listen"        short:"a" long:"listen"        env:"UU_LISTEN" env-delim:" " description:"Address to listen on, e.g. '127.0.0.1:8080'. May be repeated or comma-separated." default:"127.0.0.1:8080"`
	MaxBodySize int64    `json:"max-body-size"           long:"max-body-size" env:"UU_MAX_BODY_SIZE"        description:"Maximum size of a request body in bytes"`

	Tls cert.ServerConfig `json:"tls" group:"TLS options"`

	servers server.Servers
}

func NewCommand() *Command {
	return &Command{
		MaxBodySize: server.DefaultMaxBodySize,
	}
}

// Startup starts a HTTP server for every listen address. If any of them fails, the ones
// already started are shut down.
func (s *Command) Startup() error {
	var errs error
	m := &sync.Mutex{}
	wg := &sync.WaitGroup{}

	tlsConfig, err := s.Tls.GetTlsConfig()
	if err != nil {
		return errors.Wrapf(err, "Invalid TLS configuration")
	}

	s.servers = make(server.Servers, 0, len(s.Listen))
	for _, address := range s.addresses() {
		srv := server.NewHttpServer(address)
		if s.MaxBodySize > 0 {
			srv.MaxBodySize = s.MaxBodySize
		}
		srv.TLS = tlsConfig
		s.servers = append(s.servers, srv)
	}

	wg.Add(len(s.servers))
	for _, srv := range s.servers {
		go func(srv server.Server) {
			defer wg.Done()
			if err := srv.Startup(); err != nil {
				m.Lock()
				errs = multierror.Append(errs, errors.Wrapf(err, "Could not start %v", srv))
				m.Unlock()
			}
		}(srv)
	}
	wg.Wait()

	if errs != nil {
		if err := s.Shutdown(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}

func (s *Command) addresses() []string {
	res := make([]string, 0, len(s.Listen))
	for _, l := range s.Listen {
		for _, address := range mime.SplitField(strings.TrimSpace(l)) {
			if address != "" {
				res = append(res, address)
			}
		}
	}
	return res
}

// Servers returns the servers started by Startup
func (s *Command) Servers() server.Servers {
	return s.servers
}

func (s *Command) Shutdown() error {
	var errs error

	log.Infof("Graceful server shutdown...")
	for _, srv := range s.servers {
		log.Debugf("[Server] Shutting down %v", srv)
		if err := srv.Shutdown(); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "Could not shutdown %v", srv))
		}
	}

	return errs
}

func (s *Command) Execute(args []string) error {
	logging.SetupLogging()

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	if err := s.Startup(); err != nil {
		return err
	}

	<-interrupted
	return s.Shutdown()
}
