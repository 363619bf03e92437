package config

import (
	"os"
	"strconv"
	"time"

	"netmibd/internal/pciids"
)

type Config struct {
	Port    int
	DataDir string

	ProcRoot    string
	SysRoot     string
	PCIIDs      string
	ReadTimeout time.Duration
	Concurrency int

	DNSTimeout     time.Duration
	DNSConcurrency int
	ResolvConf     string

	LogLevel  string
	LogFormat string

	// Empty identity fields are derived from the host at startup.
	SysDescr    string
	SysObjectID string
	SysContact  string
	SysName     string
	SysLocation string
	SysServices int

	SessionSecret   string
	SessionMaxAge   int
	SessionSecure   bool
	DefaultAdmin    string
	DefaultPassword string
}

func Load() *Config {
	return &Config{
		Port:    getEnvInt("NETMIBD_PORT", 8161),
		DataDir: getEnvString("NETMIBD_DATA_DIR", "./data"),

		ProcRoot:    getEnvString("NETMIBD_PROC_ROOT", "/proc"),
		SysRoot:     getEnvString("NETMIBD_SYS_ROOT", "/sys"),
		PCIIDs:      getEnvString("NETMIBD_PCI_IDS", pciids.DefaultPath()),
		ReadTimeout: getEnvDuration("NETMIBD_READ_TIMEOUT", 2*time.Second),
		Concurrency: getEnvInt("NETMIBD_CONCURRENCY", 8),

		DNSTimeout:     getEnvDuration("NETMIBD_DNS_TIMEOUT", 2*time.Second),
		DNSConcurrency: getEnvInt("NETMIBD_DNS_CONCURRENCY", 8),
		ResolvConf:     getEnvString("NETMIBD_RESOLV_CONF", "/etc/resolv.conf"),

		LogLevel:  getEnvString("NETMIBD_LOG_LEVEL", "info"),
		LogFormat: getEnvString("NETMIBD_LOG_FORMAT", "terminal"),

		SysDescr:    getEnvString("NETMIBD_SYS_DESCR", ""),
		SysObjectID: getEnvString("NETMIBD_SYS_OBJECT_ID", ""),
		SysContact:  getEnvString("NETMIBD_SYS_CONTACT", ""),
		SysName:     getEnvString("NETMIBD_SYS_NAME", ""),
		SysLocation: getEnvString("NETMIBD_SYS_LOCATION", ""),
		SysServices: getEnvInt("NETMIBD_SYS_SERVICES", 0),

		SessionSecret:   getEnvString("NETMIBD_SESSION_SECRET", "change-me-in-production-32bytes!"),
		SessionMaxAge:   getEnvInt("NETMIBD_SESSION_MAX_AGE", 86400), // 24 hours
		SessionSecure:   getEnvBool("NETMIBD_SESSION_SECURE", false),
		DefaultAdmin:    getEnvString("NETMIBD_DEFAULT_ADMIN", "admin"),
		DefaultPassword: getEnvString("NETMIBD_DEFAULT_PASSWORD", "admin"),
	}
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
