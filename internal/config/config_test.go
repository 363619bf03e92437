package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8161, cfg.Port)
	assert.Equal(t, "/proc", cfg.ProcRoot)
	assert.Equal(t, "/sys", cfg.SysRoot)
	assert.Equal(t, 2*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 8, cfg.DNSConcurrency)
	assert.Equal(t, "terminal", cfg.LogFormat)
	assert.Empty(t, cfg.SysDescr)
}

func TestLoad_Env(t *testing.T) {
	tests := map[string]struct {
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		"port": {
			env:   map[string]string{"NETMIBD_PORT": "9000"},
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, 9000, cfg.Port) },
		},
		"bad port keeps default": {
			env:   map[string]string{"NETMIBD_PORT": "nine"},
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, 8161, cfg.Port) },
		},
		"durations": {
			env: map[string]string{"NETMIBD_READ_TIMEOUT": "250ms", "NETMIBD_DNS_TIMEOUT": "bogus"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 250*time.Millisecond, cfg.ReadTimeout)
				assert.Equal(t, 2*time.Second, cfg.DNSTimeout)
			},
		},
		"roots": {
			env: map[string]string{"NETMIBD_PROC_ROOT": "testdata/proc", "NETMIBD_SYS_ROOT": "testdata/sys"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "testdata/proc", cfg.ProcRoot)
				assert.Equal(t, "testdata/sys", cfg.SysRoot)
			},
		},
		"secure cookies": {
			env:   map[string]string{"NETMIBD_SESSION_SECURE": "true"},
			check: func(t *testing.T, cfg *Config) { assert.True(t, cfg.SessionSecure) },
		},
		"identity": {
			env: map[string]string{"NETMIBD_SYS_CONTACT": "noc@example.com", "NETMIBD_SYS_SERVICES": "78"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "noc@example.com", cfg.SysContact)
				assert.Equal(t, 78, cfg.SysServices)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			test.check(t, Load())
		})
	}
}
