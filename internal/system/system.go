// Package system holds the MIB-II system group: identity values supplied by
// the operator and the agent's uptime.
package system

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrNotWritable is returned when setting a read-only system object.
var ErrNotWritable = errors.New("object is not writable")

// DefaultObjectID is the net-snmp Linux agent OID.
const DefaultObjectID = "1.3.6.1.4.1.8072.3.2.10"

// DefaultServices advertises end-to-end (layer 4) and application (layer 7)
// services.
const DefaultServices = 72

// Writable system objects.
const (
	SysContact  = "sysContact"
	SysName     = "sysName"
	SysLocation = "sysLocation"
)

type Identity struct {
	Descr    string
	ObjectID string
	Contact  string
	Name     string
	Location string
	Services int
}

// Scalars serves the system group. Contact, name and location may change at
// runtime; the rest is fixed at construction.
type Scalars struct {
	mu       sync.RWMutex
	identity Identity
	started  time.Time
	now      func() time.Time
}

func New(identity Identity) *Scalars {
	return newWithClock(identity, time.Now)
}

func newWithClock(identity Identity, now func() time.Time) *Scalars {
	if identity.ObjectID == "" {
		identity.ObjectID = DefaultObjectID
	}
	if identity.Services == 0 {
		identity.Services = DefaultServices
	}
	return &Scalars{
		identity: identity,
		started:  now(),
		now:      now,
	}
}

// DefaultDescr describes the host the way uname does.
func DefaultDescr(kernelRelease string) string {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	return fmt.Sprintf("Linux %s %s", host, kernelRelease)
}

func (s *Scalars) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Scalars) Descr() string    { return s.Identity().Descr }
func (s *Scalars) ObjectID() string { return s.Identity().ObjectID }
func (s *Scalars) Contact() string  { return s.Identity().Contact }
func (s *Scalars) Name() string     { return s.Identity().Name }
func (s *Scalars) Location() string { return s.Identity().Location }
func (s *Scalars) Services() int    { return s.Identity().Services }

// StartedAt is when the agent came up.
func (s *Scalars) StartedAt() time.Time {
	return s.started
}

// Uptime is the time since construction in hundredths of a second.
func (s *Scalars) Uptime() uint64 {
	elapsed := s.now().Sub(s.started)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / (10 * time.Millisecond))
}

func (s *Scalars) SetContact(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity.Contact = v
}

func (s *Scalars) SetName(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity.Name = v
}

func (s *Scalars) SetLocation(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity.Location = v
}

// Set updates a writable object by name and returns the previous value.
func (s *Scalars) Set(object, value string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var field *string
	switch object {
	case SysContact:
		field = &s.identity.Contact
	case SysName:
		field = &s.identity.Name
	case SysLocation:
		field = &s.identity.Location
	default:
		return "", fmt.Errorf("%w: %s", ErrNotWritable, object)
	}

	old := *field
	*field = value
	return old, nil
}
