// Package pciids loads the distribution pci.ids database used to describe
// network interfaces by vendor and device.
package pciids

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Unknown is reported for identifiers missing from the database.
const Unknown = "Unknown"

type vendor struct {
	name    string
	devices map[string]string
}

// Database maps lower-case hex vendor and device identifiers to names.
type Database struct {
	vendors map[string]vendor
}

// Parse reads the pci.ids format: vendor lines ("8086  Intel Corporation"),
// tab-indented device lines under them, doubly indented subsystem lines and
// trailing device class sections ("C 02  Network controller"). Subsystems
// and classes are skipped.
func Parse(r io.Reader) (*Database, error) {
	db := &Database{vendors: make(map[string]vendor)}

	var current *vendor
	inClass := false

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "C "):
			inClass = true
			current = nil
		case strings.HasPrefix(line, "\t\t"):
			// subsystem or class programming interface
		case strings.HasPrefix(line, "\t"):
			if inClass || current == nil {
				continue
			}
			id, name, ok := splitEntry(line[1:])
			if !ok {
				continue
			}
			current.devices[id] = name
		default:
			id, name, ok := splitEntry(line)
			if !ok {
				continue
			}
			inClass = false
			v := vendor{name: name, devices: make(map[string]string)}
			db.vendors[id] = v
			current = &v
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse pci.ids: %w", err)
	}

	return db, nil
}

func splitEntry(s string) (id, name string, ok bool) {
	id, name, ok = strings.Cut(s, "  ")
	if !ok || len(id) != 4 {
		return "", "", false
	}
	return strings.ToLower(id), strings.TrimSpace(name), true
}

// Vendor returns the vendor name for a hex id.
func (db *Database) Vendor(id string) (string, bool) {
	v, ok := db.vendors[normalize(id)]
	return v.name, ok
}

// Device returns the device name for a vendor/device pair.
func (db *Database) Device(vendorID, deviceID string) (string, bool) {
	v, ok := db.vendors[normalize(vendorID)]
	if !ok {
		return "", false
	}
	name, ok := v.devices[normalize(deviceID)]
	return name, ok
}

// Describe composes an interface description. An unknown vendor yields
// Unknown; an unknown device under a known vendor keeps the vendor name.
func (db *Database) Describe(vendorID, deviceID, revision string) string {
	vendorName, ok := db.Vendor(vendorID)
	if !ok {
		return Unknown
	}
	deviceName, ok := db.Device(vendorID, deviceID)
	if !ok {
		deviceName = Unknown
	}

	desc := vendorName + " " + deviceName
	if revision != "" {
		desc += " (rev " + revision + ")"
	}
	return desc
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(id), "0x"))
}

// Lookup loads the database from disk on first use. A missing or broken
// file leaves an empty database so every description reads Unknown.
type Lookup struct {
	path string
	log  *slog.Logger

	once sync.Once
	db   *Database
}

func NewLookup(path string, log *slog.Logger) *Lookup {
	return &Lookup{
		path: path,
		log:  log.With("component", "pciids"),
	}
}

// NewStaticLookup wraps an already parsed database.
func NewStaticLookup(db *Database) *Lookup {
	l := &Lookup{db: db}
	l.once.Do(func() {})
	return l
}

func (l *Lookup) database() *Database {
	l.once.Do(func() {
		l.db = &Database{vendors: make(map[string]vendor)}
		if l.path == "" {
			l.log.Info("no pci.ids database configured, interface descriptions will be Unknown")
			return
		}

		f, err := os.Open(l.path)
		if err != nil {
			l.log.Warn("failed to open pci.ids", "path", l.path, "error", err)
			return
		}
		defer f.Close()

		db, err := Parse(f)
		if err != nil {
			l.log.Warn("failed to load pci.ids", "path", l.path, "error", err)
			return
		}
		l.db = db
		l.log.Debug("loaded pci.ids", "path", l.path, "vendors", len(db.vendors))
	})
	return l.db
}

func (l *Lookup) Describe(vendorID, deviceID, revision string) string {
	return l.database().Describe(vendorID, deviceID, revision)
}

// DefaultPath returns the first existing well-known pci.ids location.
func DefaultPath() string {
	for _, p := range []string{
		"/usr/share/misc/pci.ids",
		"/usr/share/hwdata/pci.ids",
		"/usr/share/pci.ids",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
