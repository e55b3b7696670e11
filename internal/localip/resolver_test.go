package localip

import "testing"

func TestUsable(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want bool
	}{
		{"private address", "192.168.1.42", true},
		{"public address", "203.0.113.7", true},
		{"loopback", "127.0.0.1", false},
		{"loopback range", "127.1.2.3", false},
		{"unspecified", "0.0.0.0", false},
		{"link-local", "169.254.10.20", false},
		{"ipv6", "fd00::1", false},
		{"garbage", "not-an-ip", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usable(tt.addr); got != tt.want {
				t.Errorf("usable(%q) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}
}

func TestParseRouteGet(t *testing.T) {
	out := "8.8.8.8 via 192.168.1.1 dev eth0 src 192.168.1.42 uid 1000 \n    cache \n"
	if got := parseRouteGet(out); got != "192.168.1.42" {
		t.Errorf("Expected 192.168.1.42, got %q", got)
	}
}

func TestParseRouteGet_RejectsLoopbackSrc(t *testing.T) {
	out := "8.8.8.8 dev lo src 127.0.0.1 uid 0 \n"
	if got := parseRouteGet(out); got != "" {
		t.Errorf("Expected no address, got %q", got)
	}
}

func TestParseAddrShow(t *testing.T) {
	out := `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 qdisc noqueue state UNKNOWN group default qlen 1000
    inet 127.0.0.1/8 scope host lo
       valid_lft forever preferred_lft forever
2: eth0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc fq_codel state UP group default qlen 1000
    inet 192.168.1.42/24 brd 192.168.1.255 scope global dynamic eth0
       valid_lft 86055sec preferred_lft 86055sec
`
	if got := parseAddrShow(out); got != "192.168.1.42" {
		t.Errorf("Expected 192.168.1.42, got %q", got)
	}
}

func TestParseAddrShow_NoGlobalScope(t *testing.T) {
	out := `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536
    inet 127.0.0.1/8 scope host lo
`
	if got := parseAddrShow(out); got != "" {
		t.Errorf("Expected no address, got %q", got)
	}
}

func TestParseIfconfig(t *testing.T) {
	out := `lo0: flags=8049<UP,LOOPBACK,RUNNING,MULTICAST> mtu 16384
	inet 127.0.0.1 netmask 0xff000000
	inet6 ::1 prefixlen 128
en0: flags=8863<UP,BROADCAST,SMART,RUNNING,SIMPLEX,MULTICAST> mtu 1500
	ether f0:18:98:aa:bb:cc
	inet6 fe80::1c2a:abcd:ef01:2345%en0 prefixlen 64 secured scopeid 0xc
	inet 192.168.1.23 netmask 0xffffff00 broadcast 192.168.1.255
`
	if got := parseIfconfig(out); got != "192.168.1.23" {
		t.Errorf("Expected 192.168.1.23, got %q", got)
	}
}

func TestParseIfconfig_SkipsLinkLocalAndNonEthernet(t *testing.T) {
	out := `utun0: flags=8051<UP,POINTOPOINT,RUNNING,MULTICAST> mtu 1380
	inet 10.8.0.2 --> 10.8.0.1 netmask 0xffffffff
en0: flags=8863<UP,BROADCAST,SMART,RUNNING,SIMPLEX,MULTICAST> mtu 1500
	inet 169.254.12.34 netmask 0xffff0000
en1: flags=8863<UP,BROADCAST,SMART,RUNNING,SIMPLEX,MULTICAST> mtu 1500
	inet 192.168.1.24 netmask 0xffffff00 broadcast 192.168.1.255
`
	// utun0 is not an en* interface and en0 only has a link-local address,
	// so en1 wins.
	if got := parseIfconfig(out); got != "192.168.1.24" {
		t.Errorf("Expected 192.168.1.24, got %q", got)
	}
}
