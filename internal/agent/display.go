package agent

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gosnmp/gosnmp"
)

var typeNames = map[gosnmp.Asn1BER]string{
	gosnmp.Integer:          "INTEGER",
	gosnmp.OctetString:      "STRING",
	gosnmp.ObjectIdentifier: "OID",
	gosnmp.IPAddress:        "IpAddress",
	gosnmp.Counter32:        "Counter32",
	gosnmp.Gauge32:          "Gauge32",
	gosnmp.TimeTicks:        "Timeticks",
}

// TypeName is the net-snmp style name of a varbind type.
func TypeName(pdu gosnmp.SnmpPDU) string {
	if pdu.Type == gosnmp.OctetString {
		if _, ok := printable(pdu.Value); !ok {
			return "Hex-STRING"
		}
	}
	if name, ok := typeNames[pdu.Type]; ok {
		return name
	}
	return pdu.Type.String()
}

// DisplayValue renders a varbind value for JSON and text output. Binary
// octet strings become colon-separated hex.
func DisplayValue(pdu gosnmp.SnmpPDU) any {
	if pdu.Type != gosnmp.OctetString {
		return pdu.Value
	}
	if s, ok := printable(pdu.Value); ok {
		return s
	}
	b, _ := pdu.Value.([]byte)
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02x", c)
	}
	return strings.Join(parts, ":")
}

// FormatVarbind renders "name = TYPE: value".
func FormatVarbind(name string, pdu gosnmp.SnmpPDU) string {
	return fmt.Sprintf("%s = %s: %v", name, TypeName(pdu), DisplayValue(pdu))
}

func printable(v any) (string, bool) {
	b, ok := v.([]byte)
	if !ok {
		return "", false
	}
	for _, r := range string(b) {
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return "", false
		}
	}
	return string(b), true
}
