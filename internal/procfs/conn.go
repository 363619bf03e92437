package procfs

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Socket is one IPv4 entry of /proc/net/tcp or /proc/net/udp.
type Socket struct {
	LocalAddress  string
	LocalPort     int
	RemoteAddress string
	RemotePort    int
	// State is the kernel's internal state code (see TCPStateFromKernel).
	State int
}

// TCP reads /proc/net/tcp.
func (fs *FS) TCP(ctx context.Context) ([]Socket, error) {
	return fs.sockets(ctx, "tcp")
}

// UDP reads /proc/net/udp.
func (fs *FS) UDP(ctx context.Context) ([]Socket, error) {
	return fs.sockets(ctx, "udp")
}

func (fs *FS) sockets(ctx context.Context, proto string) ([]Socket, error) {
	path := fs.procPath("net", proto)
	data, err := fs.readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseSockets(path, bytes.NewReader(data))
}

// ParseSockets parses the /proc/net/{tcp,udp} table format. The header
// line is skipped; address columns are "ADDR:PORT" in hex.
//
//	sl  local_address rem_address   st tx_queue rx_queue ...
//	0: 0100007F:0016 00000000:0000 0A 00000000:00000000 ...
func ParseSockets(path string, r io.Reader) ([]Socket, error) {
	sc := bufio.NewScanner(r)

	var socks []Socket
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
		if len(parts) < 4 {
			return nil, formatErrorf(path, lineNo, "expected at least 4 columns, got %d", len(parts))
		}

		localAddr, localPort, err := parseHexAddrPort(parts[1])
		if err != nil {
			return nil, formatErrorf(path, lineNo, "local address: %v", err)
		}
		remAddr, remPort, err := parseHexAddrPort(parts[2])
		if err != nil {
			return nil, formatErrorf(path, lineNo, "remote address: %v", err)
		}
		state, err := strconv.ParseUint(parts[3], 16, 8)
		if err != nil {
			return nil, formatErrorf(path, lineNo, "state: bad value %q", parts[3])
		}

		socks = append(socks, Socket{
			LocalAddress:  localAddr,
			LocalPort:     localPort,
			RemoteAddress: remAddr,
			RemotePort:    remPort,
			State:         int(state),
		})
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return socks, nil
}

func parseHexAddrPort(s string) (string, int, error) {
	addrHex, portHex, ok := strings.Cut(s, ":")
	if !ok {
		return "", 0, fmt.Errorf("%w: %q is not ADDR:PORT", ErrFormat, s)
	}
	addr, err := HexToIPv4(addrHex)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.ParseUint(portHex, 16, 16)
	if err != nil {
		return "", 0, fmt.Errorf("%w: port %q", ErrFormat, portHex)
	}
	return addr, int(port), nil
}
