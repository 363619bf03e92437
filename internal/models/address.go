package models

import (
	"github.com/gosnmp/gosnmp"

	"netmibd/internal/snmpnum"
)

// ReasmMaxSize is reported for ipAdEntReasmMaxSize and ipv6IfReasmMaxSize.
const ReasmMaxSize = 65535

// AddressRecord is one ipAddrTable row.
type AddressRecord struct {
	Address   string `json:"ipAdEntAddr"`
	Interface string `json:"interface"`
	IfIndex   int    `json:"ipAdEntIfIndex"`
	Netmask   string `json:"ipAdEntNetMask"`
	// BcastAddr is the least significant bit of the broadcast address.
	BcastAddr int `json:"ipAdEntBcastAddr"`
}

func (r AddressRecord) Varbinds() []gosnmp.SnmpPDU {
	return []gosnmp.SnmpPDU{
		snmpnum.IPAddress("ipAdEntAddr", r.Address),
		snmpnum.Integer("ipAdEntIfIndex", r.IfIndex),
		snmpnum.IPAddress("ipAdEntNetMask", r.Netmask),
		snmpnum.Integer("ipAdEntBcastAddr", r.BcastAddr),
		snmpnum.Integer("ipAdEntReasmMaxSize", ReasmMaxSize),
	}
}

// ipNetToMediaType
const NetToMediaOther = 1

// NetToMediaRecord is one ipNetToMediaTable row.
type NetToMediaRecord struct {
	IfIndex     int          `json:"ipNetToMediaIfIndex"`
	PhysAddress HardwareAddr `json:"ipNetToMediaPhysAddress"`
	NetAddress  string       `json:"ipNetToMediaNetAddress"`
	Type        int          `json:"ipNetToMediaType"`
}

func (r NetToMediaRecord) Varbinds() []gosnmp.SnmpPDU {
	return []gosnmp.SnmpPDU{
		snmpnum.Integer("ipNetToMediaIfIndex", r.IfIndex),
		snmpnum.OctetString("ipNetToMediaPhysAddress", r.PhysAddress),
		snmpnum.IPAddress("ipNetToMediaNetAddress", r.NetAddress),
		snmpnum.Integer("ipNetToMediaType", r.Type),
	}
}
