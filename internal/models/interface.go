package models

import (
	"github.com/gosnmp/gosnmp"

	"netmibd/internal/snmpnum"
)

// ifType, ifAdminStatus
const (
	IfTypeOther = 1
	IfAdminUp   = 1
)

// InterfaceRecord is one ifTable row. Counters hold raw kernel values;
// Varbinds applies Counter32 and Gauge32 policy.
type InterfaceRecord struct {
	Index           int          `json:"ifIndex"`
	Name            string       `json:"name"`
	Descr           string       `json:"ifDescr"`
	Type            int          `json:"ifType"`
	MTU             uint64       `json:"ifMtu"`
	Speed           uint32       `json:"ifSpeed"`
	PhysAddress     HardwareAddr `json:"ifPhysAddress"`
	AdminStatus     int          `json:"ifAdminStatus"`
	OperStatus      int          `json:"ifOperStatus"`
	LastChange      uint64       `json:"ifLastChange"`
	InOctets        uint64       `json:"ifInOctets"`
	InUcastPkts     uint64       `json:"ifInUcastPkts"`
	InNUcastPkts    uint64       `json:"ifInNUcastPkts"`
	InDiscards      uint64       `json:"ifInDiscards"`
	InErrors        uint64       `json:"ifInErrors"`
	InUnknownProtos uint64       `json:"ifInUnknownProtos"`
	OutOctets       uint64       `json:"ifOutOctets"`
	OutUcastPkts    uint64       `json:"ifOutUcastPkts"`
	OutNUcastPkts   uint64       `json:"ifOutNUcastPkts"`
	OutDiscards     uint64       `json:"ifOutDiscards"`
	OutErrors       uint64       `json:"ifOutErrors"`
	OutQLen         uint64       `json:"ifOutQLen"`
}

func (r InterfaceRecord) Varbinds() []gosnmp.SnmpPDU {
	return []gosnmp.SnmpPDU{
		snmpnum.Integer("ifIndex", r.Index),
		snmpnum.String("ifDescr", r.Descr),
		snmpnum.Integer("ifType", r.Type),
		snmpnum.Integer("ifMtu", int(snmpnum.ClampGauge32(r.MTU))),
		snmpnum.Gauge32("ifSpeed", uint64(r.Speed)),
		snmpnum.OctetString("ifPhysAddress", r.PhysAddress),
		snmpnum.Integer("ifAdminStatus", r.AdminStatus),
		snmpnum.Integer("ifOperStatus", r.OperStatus),
		snmpnum.TimeTicks("ifLastChange", r.LastChange),
		snmpnum.Counter32("ifInOctets", r.InOctets),
		snmpnum.Counter32("ifInUcastPkts", r.InUcastPkts),
		snmpnum.Counter32("ifInNUcastPkts", r.InNUcastPkts),
		snmpnum.Counter32("ifInDiscards", r.InDiscards),
		snmpnum.Counter32("ifInErrors", r.InErrors),
		snmpnum.Counter32("ifInUnknownProtos", r.InUnknownProtos),
		snmpnum.Counter32("ifOutOctets", r.OutOctets),
		snmpnum.Counter32("ifOutUcastPkts", r.OutUcastPkts),
		snmpnum.Counter32("ifOutNUcastPkts", r.OutNUcastPkts),
		snmpnum.Counter32("ifOutDiscards", r.OutDiscards),
		snmpnum.Counter32("ifOutErrors", r.OutErrors),
		snmpnum.Gauge32("ifOutQLen", r.OutQLen),
		snmpnum.ObjectIdentifier("ifSpecific", snmpnum.NullOID),
	}
}
