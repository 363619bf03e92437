package models

import (
	"github.com/gosnmp/gosnmp"

	"netmibd/internal/snmpnum"
)

// ConnectionRecord is one tcpConnTable row. RemoteHostnames is filled only
// when reverse resolution was requested and succeeded.
type ConnectionRecord struct {
	State           int      `json:"tcpConnState"`
	StateName       string   `json:"stateName"`
	LocalAddress    string   `json:"tcpConnLocalAddress"`
	LocalPort       int      `json:"tcpConnLocalPort"`
	RemoteAddress   string   `json:"tcpConnRemAddress"`
	RemotePort      int      `json:"tcpConnRemPort"`
	RemoteHostnames []string `json:"remoteHostnames,omitempty"`
}

func (r ConnectionRecord) Varbinds() []gosnmp.SnmpPDU {
	return []gosnmp.SnmpPDU{
		snmpnum.Integer("tcpConnState", r.State),
		snmpnum.IPAddress("tcpConnLocalAddress", r.LocalAddress),
		snmpnum.Integer("tcpConnLocalPort", r.LocalPort),
		snmpnum.IPAddress("tcpConnRemAddress", r.RemoteAddress),
		snmpnum.Integer("tcpConnRemPort", r.RemotePort),
	}
}

// UDPRecord is one udpTable row.
type UDPRecord struct {
	LocalAddress string `json:"udpLocalAddress"`
	LocalPort    int    `json:"udpLocalPort"`
}

func (r UDPRecord) Varbinds() []gosnmp.SnmpPDU {
	return []gosnmp.SnmpPDU{
		snmpnum.IPAddress("udpLocalAddress", r.LocalAddress),
		snmpnum.Integer("udpLocalPort", r.LocalPort),
	}
}
