package pciids

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dataPCIIDs, _ = os.ReadFile("testdata/pci.ids")

func Test_testDataIsValid(t *testing.T) {
	require.NotNil(t, dataPCIIDs)
}

func TestParse(t *testing.T) {
	db, err := Parse(strings.NewReader(string(dataPCIIDs)))
	require.NoError(t, err)

	name, ok := db.Vendor("8086")
	assert.True(t, ok)
	assert.Equal(t, "Intel Corporation", name)

	name, ok = db.Device("0x8086", "0x100E")
	assert.True(t, ok)
	assert.Equal(t, "82540EM Gigabit Ethernet Controller", name)

	_, ok = db.Vendor("02")
	assert.False(t, ok, "class section must not be read as vendor")
	_, ok = db.Device("8086", "001e")
	assert.False(t, ok, "subsystem lines must not be read as devices")
}

func TestDatabase_Describe(t *testing.T) {
	db, err := Parse(strings.NewReader(string(dataPCIIDs)))
	require.NoError(t, err)

	tests := map[string]struct {
		vendor, device, rev string
		want                string
	}{
		"known pair with revision": {
			vendor: "8086", device: "100e", rev: "03",
			want: "Intel Corporation 82540EM Gigabit Ethernet Controller (rev 03)",
		},
		"known pair without revision": {
			vendor: "1022", device: "2000",
			want: "Advanced Micro Devices, Inc. [AMD] 79c970 [PCnet32 LANCE]",
		},
		"unknown device of known vendor": {
			vendor: "8086", device: "ffff",
			want: "Intel Corporation Unknown",
		},
		"unknown vendor": {
			vendor: "dead", device: "beef", rev: "01",
			want: Unknown,
		},
		"no identifiers": {
			want: Unknown,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, db.Describe(test.vendor, test.device, test.rev))
		})
	}
}

func TestLookup_MissingFile(t *testing.T) {
	l := NewLookup("testdata/does-not-exist", slog.New(slog.NewTextHandler(os.Stderr, nil)))

	assert.NotPanics(t, func() {
		assert.Equal(t, Unknown, l.Describe("8086", "100e", ""))
	})
}

func TestLookup_LoadsOnce(t *testing.T) {
	l := NewLookup("testdata/pci.ids", slog.New(slog.NewTextHandler(os.Stderr, nil)))

	first := l.database()
	second := l.database()
	assert.Same(t, first, second)
	assert.Equal(t, "Intel Corporation 82574L Gigabit Network Connection", l.Describe("8086", "10d3", ""))
}
