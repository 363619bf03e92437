package procfs

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
)

// NetSnmp maps a protocol group (Ip, Icmp, Tcp, Udp, ...) to its named
// counters, as read from /proc/net/snmp.
type NetSnmp map[string]map[string]int64

// Value returns a counter and whether both the group and the field exist.
func (s NetSnmp) Value(group, field string) (int64, bool) {
	g, ok := s[group]
	if !ok {
		return 0, false
	}
	v, ok := g[field]
	return v, ok
}

// Snmp6 maps /proc/net/snmp6/<if> counter names (Ip6InReceives, ...) to values.
type Snmp6 map[string]int64

// NetSnmp reads /proc/net/snmp.
func (fs *FS) NetSnmp(ctx context.Context) (NetSnmp, error) {
	path := fs.procPath("net", "snmp")
	data, err := fs.readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseNetSnmp(path, bytes.NewReader(data))
}

// ParseNetSnmp parses the header/value line pairs of /proc/net/snmp:
//
//	Tcp: RtoAlgorithm RtoMin RtoMax MaxConn ...
//	Tcp: 1 200 120000 -1 ...
//
// A value line must carry the same group name and field count as the header
// preceding it; anything else is a FormatError and no partial data is returned.
func ParseNetSnmp(path string, r io.Reader) (NetSnmp, error) {
	sc := bufio.NewScanner(r)
	stats := make(NetSnmp)

	lineNo := 0
	next := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			if line := strings.TrimSpace(sc.Text()); line != "" {
				return line, true
			}
		}
		return "", false
	}

	for {
		header, ok := next()
		if !ok {
			break
		}
		headerLine := lineNo

		values, ok := next()
		if !ok {
			return nil, formatErrorf(path, headerLine, "header line has no value line")
		}

		hGroup, names, err := splitGroupLine(path, headerLine, header)
		if err != nil {
			return nil, err
		}
		vGroup, fields, err := splitGroupLine(path, lineNo, values)
		if err != nil {
			return nil, err
		}

		if hGroup != vGroup {
			return nil, formatErrorf(path, lineNo, "value group %q does not match header group %q", vGroup, hGroup)
		}
		if len(names) != len(fields) {
			return nil, formatErrorf(path, lineNo, "group %s: %d header fields but %d values", hGroup, len(names), len(fields))
		}

		group := make(map[string]int64, len(names))
		for i, name := range names {
			v, err := parseCounter(fields[i])
			if err != nil {
				return nil, formatErrorf(path, lineNo, "group %s field %s: bad value %q", hGroup, name, fields[i])
			}
			group[name] = v
		}
		stats[hGroup] = group
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func splitGroupLine(path string, lineNo int, line string) (string, []string, error) {
	group, rest, ok := strings.Cut(line, ":")
	if !ok || group == "" {
		return "", nil, formatErrorf(path, lineNo, "missing group prefix")
	}
	return group, strings.Fields(rest), nil
}

// Snmp6 reads /proc/net/snmp6/<iface>.
func (fs *FS) Snmp6(ctx context.Context, iface string) (Snmp6, error) {
	path := fs.procPath("net", "snmp6", iface)
	data, err := fs.readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseSnmp6(path, bytes.NewReader(data))
}

// ParseSnmp6 parses the flat "name value" list of /proc/net/snmp6 files.
func ParseSnmp6(path string, r io.Reader) (Snmp6, error) {
	sc := bufio.NewScanner(r)
	stats := make(Snmp6)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		parts := strings.Fields(sc.Text())
		if len(parts) == 0 {
			continue
		}
		if len(parts) != 2 {
			return nil, formatErrorf(path, lineNo, "expected name and value, got %d fields", len(parts))
		}
		v, err := parseCounter(parts[1])
		if err != nil {
			return nil, formatErrorf(path, lineNo, "%s: bad value %q", parts[0], parts[1])
		}
		stats[parts[0]] = v
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// HasSnmp6 reports whether the kernel publishes IPv6 statistics for iface,
// i.e. whether IPv6 is enabled on it.
func (fs *FS) HasSnmp6(ctx context.Context, iface string) (bool, error) {
	return fs.exists(ctx, fs.procPath("net", "snmp6", iface))
}
