package server

import (
	"fmt"
)

// Servers is a list of servers started by the `server` command
type Servers []Server

type Server interface {
	fmt.Stringer

	Startup() error
	Shutdown() error
}
