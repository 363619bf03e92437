package procfs

import (
	"context"
)

// IPForwarding reads net.ipv4.ip_forward.
func (fs *FS) IPForwarding(ctx context.Context) (bool, error) {
	v, err := fs.readInt(ctx, fs.procPath("sys", "net", "ipv4", "ip_forward"))
	return v != 0, err
}

// IPDefaultTTL reads net.ipv4.ip_default_ttl.
func (fs *FS) IPDefaultTTL(ctx context.Context) (int64, error) {
	return fs.readInt(ctx, fs.procPath("sys", "net", "ipv4", "ip_default_ttl"))
}

// IPv6Forwarding reads net.ipv6.conf.all.forwarding.
func (fs *FS) IPv6Forwarding(ctx context.Context) (bool, error) {
	v, err := fs.readInt(ctx, fs.procPath("sys", "net", "ipv6", "conf", "all", "forwarding"))
	return v != 0, err
}

// IPv6HopLimit reads net.ipv6.conf.all.hop_limit.
func (fs *FS) IPv6HopLimit(ctx context.Context) (int64, error) {
	return fs.readInt(ctx, fs.procPath("sys", "net", "ipv6", "conf", "all", "hop_limit"))
}

// KernelRelease reads kernel.osrelease.
func (fs *FS) KernelRelease(ctx context.Context) (string, error) {
	return fs.readString(ctx, fs.procPath("sys", "kernel", "osrelease"))
}
