package localip

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mark-gargan/adguard-rewrite-sync/internal/domain"
)

// DarwinResolver enumerates network interfaces with ifconfig, walking en*
// interfaces in output order.
type DarwinResolver struct{}

// Ensure DarwinResolver implements Resolver.
var _ Resolver = (*DarwinResolver)(nil)

// Resolve returns the first usable IPv4 address on an ethernet-style
// interface.
func (r *DarwinResolver) Resolve(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "ifconfig").Output()
	if err != nil {
		return "", fmt.Errorf("running ifconfig: %w", err)
	}
	if ip := parseIfconfig(string(out)); ip != "" {
		return ip, nil
	}
	return "", domain.ErrNoAddress
}

// parseIfconfig walks interface blocks and returns the first usable inet
// address belonging to an en* interface. Interface header lines start at
// column zero; address lines are indented.
func parseIfconfig(out string) string {
	current := ""
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			current = strings.SplitN(line, ":", 2)[0]
			continue
		}
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "inet ") || !strings.HasPrefix(current, "en") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && usable(fields[1]) {
			return fields[1]
		}
	}
	return ""
}
