package localip

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/mark-gargan/adguard-rewrite-sync/internal/domain"
)

// dockerHost resolves from inside Docker containers to the container host.
const dockerHost = "host.docker.internal"

// ContainerResolver resolves the container host's address through DNS.
type ContainerResolver struct {
	resolver *net.Resolver
}

// Ensure ContainerResolver implements Resolver.
var _ Resolver = (*ContainerResolver)(nil)

// Resolve looks up host.docker.internal and returns the first usable
// address.
func (r *ContainerResolver) Resolve(ctx context.Context) (string, error) {
	addrs, err := r.resolver.LookupHost(ctx, dockerHost)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dockerHost, err)
	}
	for _, a := range addrs {
		if usable(a) {
			return a, nil
		}
	}
	return "", domain.ErrNoAddress
}

// runningInContainer reports whether the process is inside a container,
// checked via /.dockerenv and the init process cgroup.
func runningInContainer() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	data, err := os.ReadFile("/proc/1/cgroup")
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "docker") || strings.Contains(string(data), "containerd")
}
