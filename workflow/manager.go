package workflow

import (
	"sync"

	"lend/appstate"
	"lend/store"
)

// Manager hands out one Machine per mobile number so the resend countdown
// and challenge replacement stay consistent across requests within a session.
type Manager struct {
	mu       sync.Mutex
	kv       store.KeyValueStore
	opts     []Option
	machines map[string]*Machine
}

// NewManager builds a manager over the key-value collaborator. The options
// are applied to every machine it creates.
func NewManager(kv store.KeyValueStore, opts ...Option) *Manager {
	return &Manager{
		kv:       kv,
		opts:     opts,
		machines: make(map[string]*Machine),
	}
}

// Machine returns the machine for a mobile number, creating it on first use.
func (mgr *Manager) Machine(mobile string) *Machine {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	if m, ok := mgr.machines[mobile]; ok {
		return m
	}
	m := NewMachine(appstate.New(mgr.kv, mobile), mobile, mgr.opts...)
	mgr.machines[mobile] = m
	return m
}

// Store returns a state store scoped to the mobile number, for read-only
// consumers like the servicing views.
func (mgr *Manager) Store(mobile string) *appstate.Store {
	return mgr.Machine(mobile).Store()
}
