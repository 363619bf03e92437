// Package snmpnum holds the SNMP numeric encoding rules applied to kernel
// values at the accessor boundary, and typed varbind constructors.
package snmpnum

import (
	"math"
	"net"

	"github.com/gosnmp/gosnmp"
)

// UnusedMetric is the value reported for routing metrics the kernel does not use.
const UnusedMetric = -1

// MaxGauge32 is the Gauge32 ceiling, also the speed sentinel for unknown links.
const MaxGauge32 = math.MaxUint32

// NullOID is reported for OBJECT IDENTIFIER columns with no meaningful value.
const NullOID = ".0.0"

// WrapCounter32 applies Counter32 rollover (value mod 2^32).
func WrapCounter32(n uint64) uint32 {
	return uint32(n & math.MaxUint32)
}

// ClampGauge32 saturates a value at the Gauge32 ceiling.
func ClampGauge32(n uint64) uint32 {
	if n > MaxGauge32 {
		return MaxGauge32
	}
	return uint32(n)
}

// ClampSignedGauge32 is ClampGauge32 for kernel values that may be negative;
// negative values report zero.
func ClampSignedGauge32(n int64) uint32 {
	if n < 0 {
		return 0
	}
	return ClampGauge32(uint64(n))
}

func Counter32(name string, n uint64) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{Name: name, Type: gosnmp.Counter32, Value: WrapCounter32(n)}
}

func Gauge32(name string, n uint64) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{Name: name, Type: gosnmp.Gauge32, Value: ClampGauge32(n)}
}

func Integer(name string, n int) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{Name: name, Type: gosnmp.Integer, Value: n}
}

func OctetString(name string, b []byte) gosnmp.SnmpPDU {
	if b == nil {
		b = []byte{}
	}
	return gosnmp.SnmpPDU{Name: name, Type: gosnmp.OctetString, Value: b}
}

func String(name, s string) gosnmp.SnmpPDU {
	return OctetString(name, []byte(s))
}

func ObjectIdentifier(name, oid string) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{Name: name, Type: gosnmp.ObjectIdentifier, Value: oid}
}

// IPAddress encodes a dotted-decimal IPv4 address. Unparseable input is
// reported as 0.0.0.0.
func IPAddress(name, addr string) gosnmp.SnmpPDU {
	ip := net.ParseIP(addr).To4()
	if ip == nil {
		ip = net.IPv4zero.To4()
	}
	return gosnmp.SnmpPDU{Name: name, Type: gosnmp.IPAddress, Value: ip.String()}
}

// TimeTicks takes hundredths of a second; values past the 32-bit range wrap.
func TimeTicks(name string, centiseconds uint64) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{Name: name, Type: gosnmp.TimeTicks, Value: WrapCounter32(centiseconds)}
}
