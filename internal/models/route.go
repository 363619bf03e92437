package models

import (
	"github.com/gosnmp/gosnmp"

	"netmibd/internal/snmpnum"
)

// ipRouteType, ipRouteProto
const (
	RouteTypeInvalid  = 2
	RouteTypeDirect   = 3
	RouteTypeIndirect = 4

	RouteProtoLocal = 2
	RouteProtoICMP  = 4
)

// RouteRecord is one ipRouteTable row.
type RouteRecord struct {
	Destination string   `json:"ipRouteDest"`
	Gateway     string   `json:"ipRouteNextHop"`
	Mask        string   `json:"ipRouteMask"`
	Interface   string   `json:"interface"`
	IfIndex     int      `json:"ipRouteIfIndex"`
	Flags       uint32   `json:"flags"`
	FlagNames   []string `json:"flagNames"`
	Metric      int      `json:"ipRouteMetric1"`
	Type        int      `json:"ipRouteType"`
	Proto       int      `json:"ipRouteProto"`
}

func (r RouteRecord) Varbinds() []gosnmp.SnmpPDU {
	return []gosnmp.SnmpPDU{
		snmpnum.IPAddress("ipRouteDest", r.Destination),
		snmpnum.Integer("ipRouteIfIndex", r.IfIndex),
		snmpnum.Integer("ipRouteMetric1", r.Metric),
		snmpnum.Integer("ipRouteMetric2", snmpnum.UnusedMetric),
		snmpnum.Integer("ipRouteMetric3", snmpnum.UnusedMetric),
		snmpnum.Integer("ipRouteMetric4", snmpnum.UnusedMetric),
		snmpnum.IPAddress("ipRouteNextHop", r.Gateway),
		snmpnum.Integer("ipRouteType", r.Type),
		snmpnum.Integer("ipRouteProto", r.Proto),
		snmpnum.Integer("ipRouteAge", 0),
		snmpnum.IPAddress("ipRouteMask", r.Mask),
		snmpnum.Integer("ipRouteMetric5", snmpnum.UnusedMetric),
		snmpnum.ObjectIdentifier("ipRouteInfo", snmpnum.NullOID),
	}
}
