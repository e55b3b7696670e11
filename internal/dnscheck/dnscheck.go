// Package dnscheck confirms pushed rewrite rules by querying the
// appliance's own DNS listener.
package dnscheck

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
)

// Checker queries a DNS server and compares A answers against an expected
// address. It never mutates anything.
type Checker struct {
	addr   string
	client *dns.Client
}

// New creates a Checker for the given listener address (host:port).
func New(addr string) *Checker {
	return &Checker{
		addr:   addr,
		client: &dns.Client{Timeout: 5 * time.Second},
	}
}

// Confirm queries hostname and reports whether any A answer equals want.
// A successful response without a matching A record is a mismatch, not an
// error; resolver caches may simply not have caught up yet.
func (c *Checker) Confirm(ctx context.Context, hostname, want string) (bool, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(hostname), dns.TypeA)

	r, _, err := c.client.ExchangeContext(ctx, m, c.addr)
	if err != nil {
		return false, fmt.Errorf("querying %s: %w", c.addr, err)
	}
	if r.Rcode != dns.RcodeSuccess {
		return false, fmt.Errorf("query for %s returned %s", hostname, dns.RcodeToString[r.Rcode])
	}

	for _, ans := range r.Answer {
		if a, ok := ans.(*dns.A); ok && a.A.String() == want {
			return true, nil
		}
	}
	return false, nil
}
