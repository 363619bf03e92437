package procfs

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Route flags as found in the Flags column of /proc/net/route.
const (
	RouteFlagUp        = 0x0001
	RouteFlagGateway   = 0x0002
	RouteFlagHost      = 0x0004
	RouteFlagReinstate = 0x0008
	RouteFlagDynamic   = 0x0010
	RouteFlagModified  = 0x0020
	RouteFlagMtu       = 0x0040
	RouteFlagWindow    = 0x0080
	RouteFlagIrtt      = 0x0100
	RouteFlagReject    = 0x0200
	RouteFlagNotcached = 0x0400
)

var routeFlagNames = []struct {
	bit  uint32
	name string
}{
	{RouteFlagUp, "Up"},
	{RouteFlagGateway, "Gateway"},
	{RouteFlagHost, "Host"},
	{RouteFlagReinstate, "Reinstate"},
	{RouteFlagDynamic, "Dynamic"},
	{RouteFlagModified, "Modified"},
	{RouteFlagMtu, "Mtu"},
	{RouteFlagWindow, "Window"},
	{RouteFlagIrtt, "Irtt"},
	{RouteFlagReject, "Reject"},
	{RouteFlagNotcached, "Notcached"},
}

// RouteFlagNames decodes a flag bitmask into names, in bit order.
func RouteFlagNames(flags uint32) []string {
	var names []string
	for _, f := range routeFlagNames {
		if flags&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	return names
}

// Route is one row of /proc/net/route with addresses already converted to
// dotted-decimal.
type Route struct {
	Iface       string
	Destination string
	Gateway     string
	Flags       uint32
	Metric      int
	Mask        string
}

// Routes reads /proc/net/route.
func (fs *FS) Routes(ctx context.Context) ([]Route, error) {
	path := fs.procPath("net", "route")
	data, err := fs.readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseRoutes(path, bytes.NewReader(data))
}

// ParseRoutes parses /proc/net/route. The first line is a column header
// and is skipped.
//
//	Iface Destination Gateway Flags RefCnt Use Metric Mask MTU Window IRTT
func ParseRoutes(path string, r io.Reader) ([]Route, error) {
	sc := bufio.NewScanner(r)

	var routes []Route
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		parts := strings.Fields(sc.Text())
		if len(parts) == 0 {
			continue
		}
		if len(parts) < 8 {
			return nil, formatErrorf(path, lineNo, "expected at least 8 columns, got %d", len(parts))
		}

		dest, err := HexToIPv4(parts[1])
		if err != nil {
			return nil, formatErrorf(path, lineNo, "destination: %v", err)
		}
		gw, err := HexToIPv4(parts[2])
		if err != nil {
			return nil, formatErrorf(path, lineNo, "gateway: %v", err)
		}
		flags, err := strconv.ParseUint(parts[3], 16, 32)
		if err != nil {
			return nil, formatErrorf(path, lineNo, "flags: bad value %q", parts[3])
		}
		metric, err := strconv.Atoi(parts[6])
		if err != nil {
			return nil, formatErrorf(path, lineNo, "metric: bad value %q", parts[6])
		}
		mask, err := HexToIPv4(parts[7])
		if err != nil {
			return nil, formatErrorf(path, lineNo, "mask: %v", err)
		}

		routes = append(routes, Route{
			Iface:       parts[0],
			Destination: dest,
			Gateway:     gw,
			Flags:       uint32(flags),
			Metric:      metric,
			Mask:        mask,
		})
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}

// HexToIPv4 converts the kernel's reversed-byte-order hex form of an IPv4
// address ("0101A8C0") into dotted-decimal ("192.168.1.1").
func HexToIPv4(s string) (string, error) {
	if len(s) != 8 {
		return "", fmt.Errorf("%w: ipv4 hex %q is not 8 digits", ErrFormat, s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: ipv4 hex %q: %v", ErrFormat, s, err)
	}
	return fmt.Sprintf("%d.%d.%d.%d", b[3], b[2], b[1], b[0]), nil
}
