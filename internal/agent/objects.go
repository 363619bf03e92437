package agent

// MIB-II and RFC 2465 subtree roots.
const (
	oidSystem     = "1.3.6.1.2.1.1"
	oidInterfaces = "1.3.6.1.2.1.2"
	oidIP         = "1.3.6.1.2.1.4"
	oidICMP       = "1.3.6.1.2.1.5"
	oidTCP        = "1.3.6.1.2.1.6"
	oidUDP        = "1.3.6.1.2.1.7"
	oidIPv6       = "1.3.6.1.2.1.55.1"
)

// snmpCounters are plain Counter32 scalars read from /proc/net/snmp. Each
// entry names the MIB object, its arc under the group root and the kernel
// field.
type snmpCounter struct {
	name  string
	arc   int
	field string
}

var ipCounters = []snmpCounter{
	{"ipInReceives", 3, "InReceives"},
	{"ipInHdrErrors", 4, "InHdrErrors"},
	{"ipInAddrErrors", 5, "InAddrErrors"},
	{"ipForwDatagrams", 6, "ForwDatagrams"},
	{"ipInUnknownProtos", 7, "InUnknownProtos"},
	{"ipInDiscards", 8, "InDiscards"},
	{"ipInDelivers", 9, "InDelivers"},
	{"ipOutRequests", 10, "OutRequests"},
	{"ipOutDiscards", 11, "OutDiscards"},
	{"ipOutNoRoutes", 12, "OutNoRoutes"},
	{"ipReasmReqds", 14, "ReasmReqds"},
	{"ipReasmOKs", 15, "ReasmOKs"},
	{"ipReasmFails", 16, "ReasmFails"},
	{"ipFragOKs", 17, "FragOKs"},
	{"ipFragFails", 18, "FragFails"},
	{"ipFragCreates", 19, "FragCreates"},
}

var icmpCounters = []snmpCounter{
	{"icmpInMsgs", 1, "InMsgs"},
	{"icmpInErrors", 2, "InErrors"},
	{"icmpInDestUnreachs", 3, "InDestUnreachs"},
	{"icmpInTimeExcds", 4, "InTimeExcds"},
	{"icmpInParmProbs", 5, "InParmProbs"},
	{"icmpInSrcQuenchs", 6, "InSrcQuenchs"},
	{"icmpInRedirects", 7, "InRedirects"},
	{"icmpInEchos", 8, "InEchos"},
	{"icmpInEchoReps", 9, "InEchoReps"},
	{"icmpInTimestamps", 10, "InTimestamps"},
	{"icmpInTimestampReps", 11, "InTimestampReps"},
	{"icmpInAddrMasks", 12, "InAddrMasks"},
	{"icmpInAddrMaskReps", 13, "InAddrMaskReps"},
	{"icmpOutMsgs", 14, "OutMsgs"},
	{"icmpOutErrors", 15, "OutErrors"},
	{"icmpOutDestUnreachs", 16, "OutDestUnreachs"},
	{"icmpOutTimeExcds", 17, "OutTimeExcds"},
	{"icmpOutParmProbs", 18, "OutParmProbs"},
	{"icmpOutSrcQuenchs", 19, "OutSrcQuenchs"},
	{"icmpOutRedirects", 20, "OutRedirects"},
	{"icmpOutEchos", 21, "OutEchos"},
	{"icmpOutEchoReps", 22, "OutEchoReps"},
	{"icmpOutTimestamps", 23, "OutTimestamps"},
	{"icmpOutTimestampReps", 24, "OutTimestampReps"},
	{"icmpOutAddrMasks", 25, "OutAddrMasks"},
	{"icmpOutAddrMaskReps", 26, "OutAddrMaskReps"},
}

var tcpCounters = []snmpCounter{
	{"tcpActiveOpens", 5, "ActiveOpens"},
	{"tcpPassiveOpens", 6, "PassiveOpens"},
	{"tcpAttemptFails", 7, "AttemptFails"},
	{"tcpEstabResets", 8, "EstabResets"},
	{"tcpInSegs", 10, "InSegs"},
	{"tcpOutSegs", 11, "OutSegs"},
	{"tcpRetransSegs", 12, "RetransSegs"},
	{"tcpInErrs", 14, "InErrs"},
	{"tcpOutRsts", 15, "OutRsts"},
}

var udpCounters = []snmpCounter{
	{"udpInDatagrams", 1, "InDatagrams"},
	{"udpNoPorts", 2, "NoPorts"},
	{"udpInErrors", 3, "InErrors"},
	{"udpOutDatagrams", 4, "OutDatagrams"},
}
