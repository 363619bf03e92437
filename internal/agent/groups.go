package agent

import (
	"context"

	"github.com/gosnmp/gosnmp"

	"netmibd/internal/models"
	"netmibd/internal/snmpnum"
	"netmibd/internal/system"
)

func (a *Agent) registerSystem() {
	sys := a.src.System

	a.addScalar("sysDescr", arc(oidSystem, 1), func(context.Context) (gosnmp.SnmpPDU, error) {
		return snmpnum.String("sysDescr", sys.Descr()), nil
	})
	a.addScalar("sysObjectID", arc(oidSystem, 2), func(context.Context) (gosnmp.SnmpPDU, error) {
		return snmpnum.ObjectIdentifier("sysObjectID", sys.ObjectID()), nil
	})
	a.addScalar("sysUpTime", arc(oidSystem, 3), func(context.Context) (gosnmp.SnmpPDU, error) {
		return snmpnum.TimeTicks("sysUpTime", sys.Uptime()), nil
	})

	writable := []struct {
		name string
		arc  int
		get  func() string
	}{
		{system.SysContact, 4, sys.Contact},
		{system.SysName, 5, sys.Name},
		{system.SysLocation, 6, sys.Location},
	}
	for _, w := range writable {
		a.add(handler{
			Object: Object{Name: w.name, OID: arc(oidSystem, w.arc), Kind: Scalar, Writable: true},
			scalar: func(context.Context) (gosnmp.SnmpPDU, error) {
				return snmpnum.String(w.name, w.get()), nil
			},
		})
	}

	a.addScalar("sysServices", arc(oidSystem, 7), func(context.Context) (gosnmp.SnmpPDU, error) {
		return snmpnum.Integer("sysServices", sys.Services()), nil
	})
}

func (a *Agent) registerInterfaces() {
	a.addScalar("ifNumber", arc(oidInterfaces, 1), func(ctx context.Context) (gosnmp.SnmpPDU, error) {
		n, err := a.src.Interfaces.IfNumber(ctx)
		if err != nil {
			return gosnmp.SnmpPDU{}, err
		}
		return snmpnum.Integer("ifNumber", n), nil
	})
	a.addTable("ifTable", arc(oidInterfaces, 2), func(ctx context.Context, _ options) ([]models.Row, error) {
		return asRows(a.src.Interfaces.IfTable(ctx))
	})
}

func (a *Agent) registerIP() {
	a.addScalar("ipForwarding", arc(oidIP, 1), func(ctx context.Context) (gosnmp.SnmpPDU, error) {
		on, err := a.src.FS.IPForwarding(ctx)
		if err != nil {
			return gosnmp.SnmpPDU{}, err
		}
		return snmpnum.Integer("ipForwarding", truthValue(on)), nil
	})
	a.addScalar("ipDefaultTTL", arc(oidIP, 2), func(ctx context.Context) (gosnmp.SnmpPDU, error) {
		ttl, err := a.src.FS.IPDefaultTTL(ctx)
		if err != nil {
			return gosnmp.SnmpPDU{}, err
		}
		return snmpnum.Integer("ipDefaultTTL", int(ttl)), nil
	})
	a.addCounters(oidIP, "Ip", ipCounters[:10])
	a.addScalar("ipReasmTimeout", arc(oidIP, 13), func(ctx context.Context) (gosnmp.SnmpPDU, error) {
		v, err := a.snmpValue(ctx, "Ip", "ReasmTimeout")
		if err != nil {
			return gosnmp.SnmpPDU{}, err
		}
		return snmpnum.Integer("ipReasmTimeout", int(v)), nil
	})
	a.addCounters(oidIP, "Ip", ipCounters[10:])

	a.addTable("ipAddrTable", arc(oidIP, 20), func(ctx context.Context, _ options) ([]models.Row, error) {
		return asRows(a.src.Addresses.IPAddrTable(ctx))
	})
	a.addTable("ipRouteTable", arc(oidIP, 21), func(ctx context.Context, _ options) ([]models.Row, error) {
		return asRows(a.src.Routes.RouteTable(ctx))
	})
	a.addTable("ipNetToMediaTable", arc(oidIP, 22), func(ctx context.Context, _ options) ([]models.Row, error) {
		return asRows(a.src.Addresses.NetToMediaTable(ctx))
	})
	// The kernel does not count discarded routing entries.
	a.addScalar("ipRoutingDiscards", arc(oidIP, 23), func(context.Context) (gosnmp.SnmpPDU, error) {
		return snmpnum.Counter32("ipRoutingDiscards", 0), nil
	})
}

func (a *Agent) registerICMP() {
	a.addCounters(oidICMP, "Icmp", icmpCounters)
}

func (a *Agent) registerTCP() {
	integers := []struct {
		name  string
		arc   int
		field string
	}{
		{"tcpRtoAlgorithm", 1, "RtoAlgorithm"},
		{"tcpRtoMin", 2, "RtoMin"},
		{"tcpRtoMax", 3, "RtoMax"},
		// -1 when the kernel sets no limit.
		{"tcpMaxConn", 4, "MaxConn"},
	}
	for _, s := range integers {
		a.addScalar(s.name, arc(oidTCP, s.arc), func(ctx context.Context) (gosnmp.SnmpPDU, error) {
			v, err := a.snmpValue(ctx, "Tcp", s.field)
			if err != nil {
				return gosnmp.SnmpPDU{}, err
			}
			return snmpnum.Integer(s.name, int(v)), nil
		})
	}

	a.addCounters(oidTCP, "Tcp", tcpCounters[:4])
	a.addScalar("tcpCurrEstab", arc(oidTCP, 9), func(ctx context.Context) (gosnmp.SnmpPDU, error) {
		v, err := a.snmpValue(ctx, "Tcp", "CurrEstab")
		if err != nil {
			return gosnmp.SnmpPDU{}, err
		}
		return gosnmp.SnmpPDU{Name: "tcpCurrEstab", Type: gosnmp.Gauge32, Value: snmpnum.ClampSignedGauge32(v)}, nil
	})
	a.addCounters(oidTCP, "Tcp", tcpCounters[4:7])
	a.addTable("tcpConnTable", arc(oidTCP, 13), func(ctx context.Context, o options) ([]models.Row, error) {
		return asRows(a.src.Connections.TCPConnTable(ctx, o.resolveHostnames))
	})
	a.addCounters(oidTCP, "Tcp", tcpCounters[7:])
}

func (a *Agent) registerUDP() {
	a.addCounters(oidUDP, "Udp", udpCounters)
	a.addTable("udpTable", arc(oidUDP, 5), func(ctx context.Context, _ options) ([]models.Row, error) {
		return asRows(a.src.Connections.UDPTable(ctx))
	})
}

func (a *Agent) registerIPv6() {
	a.addScalar("ipv6Forwarding", arc(oidIPv6, 1), func(ctx context.Context) (gosnmp.SnmpPDU, error) {
		on, err := a.src.FS.IPv6Forwarding(ctx)
		if err != nil {
			return gosnmp.SnmpPDU{}, err
		}
		return snmpnum.Integer("ipv6Forwarding", truthValue(on)), nil
	})
	a.addScalar("ipv6DefaultHopLimit", arc(oidIPv6, 2), func(ctx context.Context) (gosnmp.SnmpPDU, error) {
		v, err := a.src.FS.IPv6HopLimit(ctx)
		if err != nil {
			return gosnmp.SnmpPDU{}, err
		}
		return snmpnum.Integer("ipv6DefaultHopLimit", int(v)), nil
	})
	a.addScalar("ipv6Interfaces", arc(oidIPv6, 3), func(ctx context.Context) (gosnmp.SnmpPDU, error) {
		names, err := a.src.Ipv6.Interfaces(ctx)
		if err != nil {
			return gosnmp.SnmpPDU{}, err
		}
		return snmpnum.Gauge32("ipv6Interfaces", uint64(len(names))), nil
	})
	a.addScalar("ipv6IfTableLastChange", arc(oidIPv6, 4), func(context.Context) (gosnmp.SnmpPDU, error) {
		return snmpnum.TimeTicks("ipv6IfTableLastChange", 0), nil
	})
	a.addTable("ipv6IfTable", arc(oidIPv6, 5), func(ctx context.Context, _ options) ([]models.Row, error) {
		return asRows(a.src.Ipv6.IfTable(ctx))
	})
	a.addTable("ipv6IfStatsTable", arc(oidIPv6, 6), func(ctx context.Context, _ options) ([]models.Row, error) {
		return asRows(a.src.Ipv6.StatsTable(ctx))
	})
	a.addTable("ipv6AddrTable", arc(oidIPv6, 8), func(ctx context.Context, _ options) ([]models.Row, error) {
		return asRows(a.src.Addresses.Ipv6AddrTable(ctx))
	})
}
