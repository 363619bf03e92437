package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// ReverseResolver maps an address to its PTR names.
type ReverseResolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

type dnsClient interface {
	ExchangeContext(ctx context.Context, msg *dns.Msg, address string) (*dns.Msg, time.Duration, error)
}

// DNSResolver sends PTR queries to the nameservers of a resolv.conf.
type DNSResolver struct {
	client  dnsClient
	servers []string
}

func NewDNSResolver(resolvConf string, timeout time.Duration) (*DNSResolver, error) {
	cfg, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", resolvConf, err)
	}
	if len(cfg.Servers) == 0 {
		return nil, fmt.Errorf("no nameservers in %s", resolvConf)
	}

	servers := make([]string, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		servers = append(servers, net.JoinHostPort(s, cfg.Port))
	}

	return &DNSResolver{
		client:  &dns.Client{Net: "udp", Timeout: timeout},
		servers: servers,
	}, nil
}

// LookupAddr tries each nameserver in turn until one answers.
func (r *DNSResolver) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	arpa, err := dns.ReverseAddr(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", addr, err)
	}

	msg := new(dns.Msg)
	msg.SetQuestion(arpa, dns.TypePTR)

	var errs []error
	for _, server := range r.servers {
		resp, _, err := r.client.ExchangeContext(ctx, msg, server)
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			return nil, fmt.Errorf("lookup %s: %s", arpa, dns.RcodeToString[resp.Rcode])
		}

		var names []string
		for _, rr := range resp.Answer {
			if ptr, ok := rr.(*dns.PTR); ok {
				names = append(names, strings.TrimSuffix(ptr.Ptr, "."))
			}
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("lookup %s: no PTR records", arpa)
		}
		return names, nil
	}

	return nil, fmt.Errorf("lookup %s: %w", arpa, errors.Join(errs...))
}
