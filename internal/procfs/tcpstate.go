package procfs

import "fmt"

// TCPState is a tcpConnState value (RFC 1213).
type TCPState int

const (
	TCPClosed      TCPState = 1
	TCPListen      TCPState = 2
	TCPSynSent     TCPState = 3
	TCPSynReceived TCPState = 4
	TCPEstablished TCPState = 5
	TCPFinWait1    TCPState = 6
	TCPFinWait2    TCPState = 7
	TCPCloseWait   TCPState = 8
	TCPLastAck     TCPState = 9
	TCPClosing     TCPState = 10
	TCPTimeWait    TCPState = 11
	TCPDeleteTCB   TCPState = 12
	// TCPNewSynReceived is not part of the MIB; the kernel reports request
	// sockets with their own state and they are passed through as 13.
	TCPNewSynReceived TCPState = 13
)

var kernelTCPStates = map[int]TCPState{
	1:  TCPEstablished,
	2:  TCPSynSent,
	3:  TCPSynReceived,
	4:  TCPFinWait1,
	5:  TCPFinWait2,
	6:  TCPTimeWait,
	7:  TCPClosed,
	8:  TCPCloseWait,
	9:  TCPLastAck,
	10: TCPListen,
	11: TCPClosing,
	12: TCPNewSynReceived,
}

var tcpStateNames = map[TCPState]string{
	TCPClosed:         "closed",
	TCPListen:         "listen",
	TCPSynSent:        "synSent",
	TCPSynReceived:    "synReceived",
	TCPEstablished:    "established",
	TCPFinWait1:       "finWait1",
	TCPFinWait2:       "finWait2",
	TCPCloseWait:      "closeWait",
	TCPLastAck:        "lastAck",
	TCPClosing:        "closing",
	TCPTimeWait:       "timeWait",
	TCPDeleteTCB:      "deleteTCB",
	TCPNewSynReceived: "newSynReceived",
}

// TCPStateFromKernel maps include/net/tcp_states.h codes to tcpConnState.
func TCPStateFromKernel(code int) (TCPState, error) {
	st, ok := kernelTCPStates[code]
	if !ok {
		return 0, fmt.Errorf("%w: kernel code %d", ErrUnknownTCPState, code)
	}
	return st, nil
}

func (s TCPState) String() string {
	if name, ok := tcpStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TCPState(%d)", int(s))
}
