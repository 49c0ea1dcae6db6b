package audio

import (
	"fmt"

	"github.com/eartrumpet-io/eartrumpet/internal/event"
	"github.com/eartrumpet-io/eartrumpet/internal/models"
)

// endpoint is one known playback device.
type endpoint struct {
	id     string
	name   string
	volume float32
	muted  bool
}

func (e *endpoint) ID() string          { return e.id }
func (e *endpoint) DisplayName() string { return e.name }

// MemoryManager is a Manager backed by a device profile held in memory.
//
// It is not safe for concurrent use: callers serialize access on the UI
// thread, which is also where change signals are emitted.
type MemoryManager struct {
	endpoints []*endpoint
	defaultID string

	virtual        *virtualDefault
	devicesChanged event.Signal

	persist func(*models.DeviceProfile)
}

// NewMemoryManager creates a manager seeded from profile. A nil profile
// yields a manager with no devices.
func NewMemoryManager(profile *models.DeviceProfile) *MemoryManager {
	m := &MemoryManager{}
	m.virtual = &virtualDefault{m: m}
	if profile != nil {
		m.endpoints, m.defaultID = fromProfile(profile)
	}
	return m
}

// OnPersist registers fn to receive a snapshot of the profile after every
// mutation made through SetMuted or SetDefault.
func (m *MemoryManager) OnPersist(fn func(*models.DeviceProfile)) {
	m.persist = fn
}

// DefaultDevice returns the virtual default device.
func (m *MemoryManager) DefaultDevice() DefaultDevice {
	return m.virtual
}

// Devices returns a snapshot of the known endpoints in profile order.
func (m *MemoryManager) Devices() []Device {
	devices := make([]Device, 0, len(m.endpoints))
	for _, e := range m.endpoints {
		copied := *e
		devices = append(devices, &copied)
	}
	return devices
}

// DevicesChanged returns the device-set signal.
func (m *MemoryManager) DevicesChanged() *event.Signal {
	return &m.devicesChanged
}

// SetDefault makes the endpoint with the given ID the default device.
func (m *MemoryManager) SetDefault(id string) error {
	if m.lookup(id) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownDevice, id)
	}
	if id == m.defaultID {
		return nil
	}
	m.defaultID = id
	m.virtual.changed.Emit()
	m.save()
	return nil
}

// Apply replaces the device set and default with the profile's contents.
// Signals fire only for what actually changed.
func (m *MemoryManager) Apply(profile *models.DeviceProfile) {
	before := m.virtual.snapshot()
	oldList := listKey(m.endpoints)

	m.endpoints, m.defaultID = fromProfile(profile)

	if listKey(m.endpoints) != oldList {
		m.devicesChanged.Emit()
	}
	if m.virtual.snapshot() != before {
		m.virtual.changed.Emit()
	}
}

// Profile returns a snapshot of the current state as a device profile.
func (m *MemoryManager) Profile() *models.DeviceProfile {
	p := models.NewDeviceProfile()
	p.Default = m.defaultID
	for _, e := range m.endpoints {
		p.Devices = append(p.Devices, models.DeviceEntry{
			ID:     e.id,
			Name:   e.name,
			Volume: e.volume,
			Muted:  e.muted,
		})
	}
	return p
}

func (m *MemoryManager) current() *endpoint {
	if m.defaultID == "" {
		return nil
	}
	return m.lookup(m.defaultID)
}

func (m *MemoryManager) lookup(id string) *endpoint {
	for _, e := range m.endpoints {
		if e.id == id {
			return e
		}
	}
	return nil
}

func (m *MemoryManager) save() {
	if m.persist != nil {
		m.persist(m.Profile())
	}
}

func fromProfile(p *models.DeviceProfile) ([]*endpoint, string) {
	endpoints := make([]*endpoint, 0, len(p.Devices))
	for _, d := range p.Devices {
		endpoints = append(endpoints, &endpoint{
			id:     d.ID,
			name:   d.Name,
			volume: clampVolume(d.Volume),
			muted:  d.Muted,
		})
	}
	return endpoints, p.Default
}

func clampVolume(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// listKey identifies the visible device list (IDs and names, in order).
func listKey(endpoints []*endpoint) string {
	key := ""
	for _, e := range endpoints {
		key += e.id + "\x00" + e.name + "\x01"
	}
	return key
}

// virtualDefault tracks the manager's current default endpoint.
type virtualDefault struct {
	m       *MemoryManager
	changed event.Signal
}

type defaultState struct {
	present bool
	id      string
	name    string
	volume  float32
	muted   bool
}

func (v *virtualDefault) snapshot() defaultState {
	e := v.m.current()
	if e == nil {
		return defaultState{}
	}
	return defaultState{present: true, id: e.id, name: e.name, volume: e.volume, muted: e.muted}
}

func (v *virtualDefault) IsDevicePresent() bool { return v.m.current() != nil }

func (v *virtualDefault) ID() string {
	if e := v.m.current(); e != nil {
		return e.id
	}
	return ""
}

func (v *virtualDefault) DisplayName() string {
	if e := v.m.current(); e != nil {
		return e.name
	}
	return ""
}

func (v *virtualDefault) Volume() float32 {
	if e := v.m.current(); e != nil {
		return e.volume
	}
	return 0
}

func (v *virtualDefault) IsMuted() bool {
	if e := v.m.current(); e != nil {
		return e.muted
	}
	return false
}

// SetMuted is a no-op when no device is present.
func (v *virtualDefault) SetMuted(muted bool) {
	e := v.m.current()
	if e == nil || e.muted == muted {
		return
	}
	e.muted = muted
	v.changed.Emit()
	v.m.save()
}

func (v *virtualDefault) Changed() *event.Signal {
	return &v.changed
}
