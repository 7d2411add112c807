package addr

import (
	"net"

	"github.com/pkg/errors"
)

// DefaultListenAddress is used when no address is configured
const DefaultListenAddress = "127.0.0.1:8080"

// ResolveHostAddress will take an address as a string and try to parse it into a net.TCPAddr using
// `net.ResolveTCPAddr`. An empty address resolves to DefaultListenAddress.
func ResolveHostAddress(addr string) (*net.TCPAddr, error) {
	if addr == "" {
		addr = DefaultListenAddress
	}
	address, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not deduct host and port from %v", addr)
	}
	return address, nil
}
