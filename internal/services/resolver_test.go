package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDNSClient struct {
	// answers by server; servers missing from the map fail.
	answers map[string][]string
	rcode   int
	servers []string
}

func (m *mockDNSClient) ExchangeContext(_ context.Context, msg *dns.Msg, server string) (*dns.Msg, time.Duration, error) {
	m.servers = append(m.servers, server)

	names, ok := m.answers[server]
	if !ok {
		return nil, 0, errors.New("mock: i/o timeout")
	}

	resp := new(dns.Msg)
	resp.SetReply(msg)
	resp.Rcode = m.rcode
	for _, name := range names {
		resp.Answer = append(resp.Answer, &dns.PTR{
			Hdr: dns.RR_Header{Name: msg.Question[0].Name, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 60},
			Ptr: name,
		})
	}
	return resp, time.Millisecond, nil
}

func TestDNSResolver_LookupAddr(t *testing.T) {
	tests := map[string]struct {
		client      *mockDNSClient
		addr        string
		wantNames   []string
		wantErr     bool
		wantServers []string
	}{
		"first server answers": {
			client:      &mockDNSClient{answers: map[string][]string{"10.0.0.53:53": {"client.lan."}}},
			addr:        "192.168.1.2",
			wantNames:   []string{"client.lan"},
			wantServers: []string{"10.0.0.53:53"},
		},
		"falls over to second server": {
			client:      &mockDNSClient{answers: map[string][]string{"10.0.0.54:53": {"a.lan.", "b.lan."}}},
			addr:        "192.168.1.2",
			wantNames:   []string{"a.lan", "b.lan"},
			wantServers: []string{"10.0.0.53:53", "10.0.0.54:53"},
		},
		"all servers fail": {
			client:      &mockDNSClient{},
			addr:        "192.168.1.2",
			wantErr:     true,
			wantServers: []string{"10.0.0.53:53", "10.0.0.54:53"},
		},
		"nxdomain": {
			client:      &mockDNSClient{answers: map[string][]string{"10.0.0.53:53": nil}, rcode: dns.RcodeNameError},
			addr:        "192.168.1.2",
			wantErr:     true,
			wantServers: []string{"10.0.0.53:53"},
		},
		"no ptr records": {
			client:      &mockDNSClient{answers: map[string][]string{"10.0.0.53:53": nil}},
			addr:        "192.168.1.2",
			wantErr:     true,
			wantServers: []string{"10.0.0.53:53"},
		},
		"invalid address": {
			client:  &mockDNSClient{},
			addr:    "not-an-ip",
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			r := &DNSResolver{
				client:  test.client,
				servers: []string{"10.0.0.53:53", "10.0.0.54:53"},
			}

			names, err := r.LookupAddr(context.Background(), test.addr)

			if test.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.wantNames, names)
			}
			assert.Equal(t, test.wantServers, test.client.servers)
		})
	}
}

func TestNewDNSResolver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolv.conf")
	require.NoError(t, os.WriteFile(path, []byte("search lan\nnameserver 10.0.0.53\nnameserver ::1\n"), 0o644))

	r, err := NewDNSResolver(path, time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.53:53", "[::1]:53"}, r.servers)

	_, err = NewDNSResolver(filepath.Join(t.TempDir(), "missing"), time.Second)
	assert.Error(t, err)
}
