package models

import (
	"net"

	"github.com/gosnmp/gosnmp"

	"netmibd/internal/snmpnum"
)

// ipv6AddrType, ipv6AddrAnycastFlag, ipv6AddrStatus values the host cannot
// refine.
const (
	Ipv6AddrTypeUnknown   = 3
	Ipv6AnycastFalse      = 2
	Ipv6AddrStatusUnknown = 5
)

// Ipv6InterfaceRecord is one ipv6IfTable row.
type Ipv6InterfaceRecord struct {
	IfIndex          int          `json:"ipv6IfIndex"`
	Descr            string       `json:"ipv6IfDescr"`
	EffectiveMTU     uint64       `json:"ipv6IfEffectiveMtu"`
	Identifier       HardwareAddr `json:"ipv6IfIdentifier"`
	IdentifierLength int          `json:"ipv6IfIdentifierLength"`
	PhysAddress      HardwareAddr `json:"ipv6IfPhysicalAddress"`
	AdminStatus      int          `json:"ipv6IfAdminStatus"`
	OperStatus       int          `json:"ipv6IfOperStatus"`
}

func (r Ipv6InterfaceRecord) Varbinds() []gosnmp.SnmpPDU {
	return []gosnmp.SnmpPDU{
		snmpnum.Integer("ipv6IfIndex", r.IfIndex),
		snmpnum.String("ipv6IfDescr", r.Descr),
		snmpnum.ObjectIdentifier("ipv6IfLowerLayer", snmpnum.NullOID),
		snmpnum.Gauge32("ipv6IfEffectiveMtu", r.EffectiveMTU),
		snmpnum.Gauge32("ipv6IfReasmMaxSize", ReasmMaxSize),
		snmpnum.OctetString("ipv6IfIdentifier", r.Identifier),
		snmpnum.Integer("ipv6IfIdentifierLength", r.IdentifierLength),
		snmpnum.OctetString("ipv6IfPhysicalAddress", r.PhysAddress),
		snmpnum.Integer("ipv6IfAdminStatus", r.AdminStatus),
		snmpnum.Integer("ipv6IfOperStatus", r.OperStatus),
		snmpnum.TimeTicks("ipv6IfLastChange", 0),
	}
}

// Ipv6StatsColumns pairs ipv6IfStatsTable columns with the
// /proc/net/snmp6 counters they are read from, in column order.
var Ipv6StatsColumns = []struct {
	Column  string
	Counter string
}{
	{"ipv6IfStatsInReceives", "Ip6InReceives"},
	{"ipv6IfStatsInHdrErrors", "Ip6InHdrErrors"},
	{"ipv6IfStatsInTooBigErrors", "Ip6InTooBigErrors"},
	{"ipv6IfStatsInNoRoutes", "Ip6InNoRoutes"},
	{"ipv6IfStatsInAddrErrors", "Ip6InAddrErrors"},
	{"ipv6IfStatsInUnknownProtos", "Ip6InUnknownProtos"},
	{"ipv6IfStatsInTruncatedPkts", "Ip6InTruncatedPkts"},
	{"ipv6IfStatsInDiscards", "Ip6InDiscards"},
	{"ipv6IfStatsInDelivers", "Ip6InDelivers"},
	{"ipv6IfStatsOutForwDatagrams", "Ip6OutForwDatagrams"},
	{"ipv6IfStatsOutRequests", "Ip6OutRequests"},
	{"ipv6IfStatsOutDiscards", "Ip6OutDiscards"},
	{"ipv6IfStatsOutFragOKs", "Ip6FragOKs"},
	{"ipv6IfStatsOutFragFails", "Ip6FragFails"},
	{"ipv6IfStatsOutFragCreates", "Ip6FragCreates"},
	{"ipv6IfStatsReasmReqds", "Ip6ReasmReqds"},
	{"ipv6IfStatsReasmOKs", "Ip6ReasmOKs"},
	{"ipv6IfStatsReasmFails", "Ip6ReasmFails"},
	{"ipv6IfStatsInMcastPkts", "Ip6InMcastPkts"},
	{"ipv6IfStatsOutMcastPkts", "Ip6OutMcastPkts"},
}

// Ipv6StatsRecord is one ipv6IfStatsTable row, an augmentation of
// ipv6IfTable: IfIndex is the same key as the matching interface row.
// Counters is parallel to Ipv6StatsColumns.
type Ipv6StatsRecord struct {
	IfIndex   int      `json:"ipv6IfIndex"`
	Interface string   `json:"interface"`
	Counters  []uint64 `json:"counters"`
}

func (r Ipv6StatsRecord) Varbinds() []gosnmp.SnmpPDU {
	vbs := make([]gosnmp.SnmpPDU, len(Ipv6StatsColumns))
	for i, col := range Ipv6StatsColumns {
		var v uint64
		if i < len(r.Counters) {
			v = r.Counters[i]
		}
		vbs[i] = snmpnum.Counter32(col.Column, v)
	}
	return vbs
}

// Ipv6AddrRecord is one ipv6AddrTable row.
type Ipv6AddrRecord struct {
	IfIndex      int    `json:"ipv6IfIndex"`
	Interface    string `json:"interface"`
	Address      string `json:"ipv6AddrAddress"`
	PrefixLength int    `json:"ipv6AddrPfxLength"`
	Type         int    `json:"ipv6AddrType"`
	AnycastFlag  int    `json:"ipv6AddrAnycastFlag"`
	Status       int    `json:"ipv6AddrStatus"`
}

func (r Ipv6AddrRecord) Varbinds() []gosnmp.SnmpPDU {
	return []gosnmp.SnmpPDU{
		snmpnum.OctetString("ipv6AddrAddress", net.ParseIP(r.Address).To16()),
		snmpnum.Integer("ipv6AddrPfxLength", r.PrefixLength),
		snmpnum.Integer("ipv6AddrType", r.Type),
		snmpnum.Integer("ipv6AddrAnycastFlag", r.AnycastFlag),
		snmpnum.Integer("ipv6AddrStatus", r.Status),
	}
}
