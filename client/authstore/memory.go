/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package authstore

import "sync"

// Memory is a process-local Store. Nothing survives a restart.
type Memory struct {
	mu   sync.RWMutex
	data map[Slot]string
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{data: make(map[Slot]string)}
}

func (m *Memory) Get(slot Slot) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[slot]
	return v, ok
}

func (m *Memory) Set(slot Slot, value string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if value == "" {
		delete(m.data, slot)
		return nil
	}
	m.data[slot] = value
	return nil
}

func (m *Memory) Clear(slot Slot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, slot)
	return nil
}

func (m *Memory) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[Slot]string)
	return nil
}

// Update stages the writes and swaps them in under a single lock
func (m *Memory) Update(fn func(w Writer) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &stagedWriter{values: make(map[Slot]*string)}
	if err := fn(staged); err != nil {
		return err
	}
	for slot, v := range staged.values {
		if v == nil {
			delete(m.data, slot)
		} else {
			m.data[slot] = *v
		}
	}
	return nil
}

// stagedWriter records writes; a nil value means clear
type stagedWriter struct {
	values map[Slot]*string
}

func (s *stagedWriter) Set(slot Slot, value string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if value == "" {
		s.values[slot] = nil
		return nil
	}
	s.values[slot] = &value
	return nil
}

func (s *stagedWriter) Clear(slot Slot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	s.values[slot] = nil
	return nil
}
