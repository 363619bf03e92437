// Package agent dispatches MIB object names to the accessors that compute
// them. An external SNMP engine, the HTTP API and the walk command all go
// through Agent.Get.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gosnmp/gosnmp"

	"netmibd/internal/models"
	"netmibd/internal/procfs"
	"netmibd/internal/services"
	"netmibd/internal/snmpnum"
	"netmibd/internal/system"
)

// ErrNoSuchObject is returned for names outside the served object set.
var ErrNoSuchObject = errors.New("no such object")

type Kind int

const (
	Scalar Kind = iota + 1
	Table
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Table:
		return "table"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Object struct {
	Name     string `json:"name"`
	OID      string `json:"oid"`
	Kind     Kind   `json:"kind"`
	Writable bool   `json:"writable,omitempty"`
}

// Value is the result of reading one object: PDU for scalars, Rows for
// tables.
type Value struct {
	Object
	PDU  *gosnmp.SnmpPDU
	Rows []models.Row
}

type options struct {
	resolveHostnames bool
}

type Option func(*options)

// WithHostnames asks connection tables to reverse-resolve remote addresses.
func WithHostnames() Option {
	return func(o *options) { o.resolveHostnames = true }
}

type handler struct {
	Object
	scalar func(ctx context.Context) (gosnmp.SnmpPDU, error)
	table  func(ctx context.Context, o options) ([]models.Row, error)
}

// Sources are the components an Agent reads from.
type Sources struct {
	FS          *procfs.FS
	System      *system.Scalars
	Interfaces  *services.InterfaceService
	Addresses   *services.AddressService
	Routes      *services.RouteService
	Connections *services.ConnectionService
	Ipv6        *services.Ipv6Service
}

type Agent struct {
	src      Sources
	handlers []handler
	byName   map[string]int
}

func New(src Sources) *Agent {
	a := &Agent{src: src, byName: make(map[string]int)}
	a.registerSystem()
	a.registerInterfaces()
	a.registerIP()
	a.registerICMP()
	a.registerTCP()
	a.registerUDP()
	a.registerIPv6()
	return a
}

// Objects lists the served objects in OID order.
func (a *Agent) Objects() []Object {
	objs := make([]Object, len(a.handlers))
	for i, h := range a.handlers {
		objs[i] = h.Object
	}
	return objs
}

func (a *Agent) Lookup(name string) (Object, bool) {
	i, ok := a.byName[name]
	if !ok {
		return Object{}, false
	}
	return a.handlers[i].Object, true
}

// Get computes the current value of an object. Tables are rebuilt from
// their kernel sources on every call.
func (a *Agent) Get(ctx context.Context, name string, opts ...Option) (*Value, error) {
	i, ok := a.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchObject, name)
	}
	h := a.handlers[i]

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := &Value{Object: h.Object}
	switch h.Kind {
	case Scalar:
		pdu, err := h.scalar(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		v.PDU = &pdu
	case Table:
		rows, err := h.table(ctx, o)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", name, err)
		}
		v.Rows = rows
	}
	return v, nil
}

// StartedAt is when the agent began counting sysUpTime.
func (a *Agent) StartedAt() time.Time {
	return a.src.System.StartedAt()
}

// Set writes a writable scalar and returns its previous value.
func (a *Agent) Set(name, value string) (string, error) {
	if _, ok := a.byName[name]; !ok {
		return "", fmt.Errorf("%w: %s", ErrNoSuchObject, name)
	}
	return a.src.System.Set(name, value)
}

// Walk visits the varbinds of the named objects, or of every object when
// names is empty. Table columns are suffixed with the 1-based row position.
func (a *Agent) Walk(ctx context.Context, names []string, fn func(name string, pdu gosnmp.SnmpPDU) error, opts ...Option) error {
	if len(names) == 0 {
		for _, h := range a.handlers {
			names = append(names, h.Name)
		}
	}

	for _, name := range names {
		v, err := a.Get(ctx, name, opts...)
		if err != nil {
			return err
		}
		if v.PDU != nil {
			if err := fn(v.PDU.Name, *v.PDU); err != nil {
				return err
			}
			continue
		}
		for i, row := range v.Rows {
			for _, pdu := range row.Varbinds() {
				if err := fn(pdu.Name+"."+strconv.Itoa(i+1), pdu); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (a *Agent) add(h handler) {
	a.byName[h.Name] = len(a.handlers)
	a.handlers = append(a.handlers, h)
}

func (a *Agent) addScalar(name, oid string, fn func(ctx context.Context) (gosnmp.SnmpPDU, error)) {
	a.add(handler{Object: Object{Name: name, OID: oid, Kind: Scalar}, scalar: fn})
}

func (a *Agent) addTable(name, oid string, fn func(ctx context.Context, o options) ([]models.Row, error)) {
	a.add(handler{Object: Object{Name: name, OID: oid, Kind: Table}, table: fn})
}

func (a *Agent) addCounters(root, group string, counters []snmpCounter) {
	for _, c := range counters {
		a.addScalar(c.name, arc(root, c.arc), func(ctx context.Context) (gosnmp.SnmpPDU, error) {
			v, err := a.snmpValue(ctx, group, c.field)
			if err != nil {
				return gosnmp.SnmpPDU{}, err
			}
			return snmpnum.Counter32(c.name, uint64(v)), nil
		})
	}
}

func (a *Agent) snmpValue(ctx context.Context, group, field string) (int64, error) {
	stats, err := a.src.FS.NetSnmp(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := stats.Value(group, field)
	if !ok {
		return 0, fmt.Errorf("%w: %s %s missing from /proc/net/snmp", procfs.ErrFormat, group, field)
	}
	return v, nil
}

func arc(root string, n int) string {
	return root + "." + strconv.Itoa(n)
}

func asRows[T models.Row](recs []T, err error) ([]models.Row, error) {
	if err != nil {
		return nil, err
	}
	out := make([]models.Row, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out, nil
}

// truthValue maps a boolean sysctl to the MIB's 1/2 enumeration.
func truthValue(b bool) int {
	if b {
		return 1
	}
	return 2
}
