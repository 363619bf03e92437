package system

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	s := New(Identity{Descr: "test host"})

	assert.Equal(t, "test host", s.Descr())
	assert.Equal(t, DefaultObjectID, s.ObjectID())
	assert.Equal(t, DefaultServices, s.Services())
	assert.Empty(t, s.Contact())
}

func TestScalars_Uptime(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	s := newWithClock(Identity{}, func() time.Time { return now })

	assert.Equal(t, uint64(0), s.Uptime())

	now = start.Add(1500 * time.Millisecond)
	assert.Equal(t, uint64(150), s.Uptime())

	now = start.Add(time.Hour)
	assert.Equal(t, uint64(360000), s.Uptime())

	now = start.Add(-time.Second)
	assert.Equal(t, uint64(0), s.Uptime(), "clock stepping back does not underflow")
}

func TestScalars_Setters(t *testing.T) {
	s := New(Identity{Contact: "noc@example.com"})

	s.SetContact("ops@example.com")
	s.SetName("edge-1")
	s.SetLocation("rack 4")

	assert.Equal(t, "ops@example.com", s.Contact())
	assert.Equal(t, "edge-1", s.Name())
	assert.Equal(t, "rack 4", s.Location())
}

func TestScalars_Set(t *testing.T) {
	tests := map[string]struct {
		object  string
		wantOld string
		wantErr error
	}{
		"contact":   {object: SysContact, wantOld: "noc"},
		"name":      {object: SysName, wantOld: "edge"},
		"location":  {object: SysLocation, wantOld: "dc1"},
		"descr":     {object: "sysDescr", wantErr: ErrNotWritable},
		"object id": {object: "sysObjectID", wantErr: ErrNotWritable},
		"unknown":   {object: "ifNumber", wantErr: ErrNotWritable},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s := New(Identity{Descr: "d", Contact: "noc", Name: "edge", Location: "dc1"})

			old, err := s.Set(test.object, "new")

			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				assert.Equal(t, "d", s.Descr())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantOld, old)
		})
	}
}

func TestScalars_ConcurrentAccess(t *testing.T) {
	s := New(Identity{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetName("edge")
		}()
		go func() {
			defer wg.Done()
			_ = s.Name()
		}()
	}
	wg.Wait()

	assert.Equal(t, "edge", s.Name())
}

func TestDefaultDescr(t *testing.T) {
	descr := DefaultDescr("6.8.0-45-generic")

	assert.True(t, strings.HasPrefix(descr, "Linux "))
	assert.True(t, strings.HasSuffix(descr, " 6.8.0-45-generic"))
}
