package models

import (
	"net"

	"github.com/gosnmp/gosnmp"
)

// Row is one table row as handed to the SNMP engine: varbinds in exact
// column order, with counter and gauge policy applied.
type Row interface {
	Varbinds() []gosnmp.SnmpPDU
}

// HardwareAddr renders as colon-separated hex in JSON.
type HardwareAddr net.HardwareAddr

func (h HardwareAddr) MarshalText() ([]byte, error) {
	return []byte(net.HardwareAddr(h).String()), nil
}

func (h HardwareAddr) String() string {
	return net.HardwareAddr(h).String()
}

// Columns returns the column names of a row type, in order.
func Columns(r Row) []string {
	vbs := r.Varbinds()
	names := make([]string, len(vbs))
	for i, vb := range vbs {
		names[i] = vb.Name
	}
	return names
}
