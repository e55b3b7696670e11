// Package localip determines the machine's primary local IP address across
// bare Linux, macOS, and containerized environments.
package localip

import (
	"context"
	"net"
	"runtime"
)

// Resolver determines the address that managed hostnames should point to.
// Implementations are read-only; resolving twice in one process yields the
// same result unless network state changed.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Detect probes the environment once and returns the resolver for the
// current platform family. Containers are checked first: inside one, the
// published address must be the host's, not the container's private one.
func Detect() Resolver {
	if runningInContainer() {
		return &ContainerResolver{resolver: net.DefaultResolver}
	}
	if runtime.GOOS == "darwin" {
		return &DarwinResolver{}
	}
	return &LinuxResolver{}
}

// usable reports whether s parses as an IPv4 address worth publishing.
// Loopback, unspecified, and link-local addresses are rejected.
func usable(s string) bool {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return false
	}
	return !ip.IsLoopback() && !ip.IsUnspecified() && !ip.IsLinkLocalUnicast()
}
