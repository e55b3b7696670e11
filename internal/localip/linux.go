package localip

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mark-gargan/adguard-rewrite-sync/internal/domain"
)

// routeProbeAddr is only used for route selection; no packets are sent.
const routeProbeAddr = "8.8.8.8"

// LinuxResolver finds the primary address from the routing table using the
// ip tool: first the source address of the route toward a public IP, then
// any global-scope interface address in command output order.
type LinuxResolver struct{}

// Ensure LinuxResolver implements Resolver.
var _ Resolver = (*LinuxResolver)(nil)

// Resolve returns the primary non-loopback IPv4 address.
func (r *LinuxResolver) Resolve(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "ip", "route", "get", routeProbeAddr).Output()
	if err == nil {
		if ip := parseRouteGet(string(out)); ip != "" {
			return ip, nil
		}
	} else {
		log.WithError(err).Debug("ip route get failed, falling back to ip addr")
	}

	out, err = exec.CommandContext(ctx, "ip", "-4", "addr", "show").Output()
	if err != nil {
		return "", fmt.Errorf("running ip addr show: %w", err)
	}
	if ip := parseAddrShow(string(out)); ip != "" {
		return ip, nil
	}
	return "", domain.ErrNoAddress
}

// parseRouteGet extracts the src address from ip route get output.
func parseRouteGet(out string) string {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		for i, f := range fields {
			if f == "src" && i+1 < len(fields) && usable(fields[i+1]) {
				return fields[i+1]
			}
		}
	}
	return ""
}

// parseAddrShow returns the first usable global-scope inet address from
// ip addr show output.
func parseAddrShow(out string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "inet ") || !strings.Contains(line, "scope global") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		ip := strings.SplitN(fields[1], "/", 2)[0]
		if usable(ip) {
			return ip
		}
	}
	return ""
}
