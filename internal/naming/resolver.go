package naming

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Resolver fills in display labels for devices that have none, using
// reverse DNS PTR lookups against a configured resolver.
type Resolver struct {
	client *dns.Client
	server string // host:port of the DNS server
}

// NewResolver builds a PTR resolver. server may omit the port; 53 is
// assumed. A zero timeout defaults to one second.
func NewResolver(server string, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = time.Second
	}
	if server != "" && !strings.Contains(server, ":") {
		server = net.JoinHostPort(server, "53")
	}
	return &Resolver{
		client: &dns.Client{Timeout: timeout},
		server: server,
	}
}

// LookupLabel resolves the PTR record for an address and normalizes it
// into a display label. ok is false when nothing usable came back.
func (r *Resolver) LookupLabel(ctx context.Context, addr string) (string, bool, error) {
	if r == nil || r.server == "" {
		return "", false, nil
	}

	arpa, err := dns.ReverseAddr(addr)
	if err != nil {
		return "", false, fmt.Errorf("reverse addr %q: %w", addr, err)
	}

	msg := new(dns.Msg)
	msg.SetQuestion(arpa, dns.TypePTR)
	msg.RecursionDesired = true

	resp, _, err := r.client.ExchangeContext(ctx, msg, r.server)
	if err != nil {
		return "", false, fmt.Errorf("ptr query for %s: %w", addr, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return "", false, nil
	}

	for _, rr := range resp.Answer {
		ptr, ok := rr.(*dns.PTR)
		if !ok {
			continue
		}
		if label, ok := DisplayLabel(ptr.Ptr); ok {
			return label, true, nil
		}
	}
	return "", false, nil
}
