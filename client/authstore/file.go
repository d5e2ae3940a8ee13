/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package authstore

import (
	"fmt"
	"sync"

	"github.com/UnifyEM/UEMSession/common/interfaces"
	"github.com/UnifyEM/UEMSession/common/uconfig"
)

// SetSession is the name of the uconfig set holding the slots
const SetSession = "session"

// File is a Store kept in a uconfig JSON file. Every write is followed by a
// checkpoint; Update checkpoints once for all of its writes.
type File struct {
	mu     sync.Mutex
	conf   *uconfig.UConfig
	set    interfaces.Parameters
	logger interfaces.Logger
}

var _ Store = (*File)(nil)

// OpenFile loads path, creating an empty file if it does not exist
func OpenFile(path string, logger interfaces.Logger) (*File, error) {
	conf, err := uconfig.New(uconfig.WithLoadOrCreate(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	logger.Debugf(8211, "session file: %s", path)
	return &File{conf: conf, set: conf.NewSet(SetSession), logger: logger}, nil
}

func (f *File) Get(slot Slot) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.set.Exists(string(slot)) {
		return "", false
	}
	return f.set.Get(string(slot)).String(), true
}

func (f *File) Set(slot Slot, value string) error {
	return f.Update(func(w Writer) error { return w.Set(slot, value) })
}

func (f *File) Clear(slot Slot) error {
	return f.Update(func(w Writer) error { return w.Clear(slot) })
}

func (f *File) ClearAll() error {
	return f.Update(func(w Writer) error {
		for _, slot := range Slots {
			if err := w.Clear(slot); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update applies the staged writes to the set and checkpoints once.
// If the checkpoint fails the in-memory set is restored.
func (f *File) Update(fn func(w Writer) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	staged := &stagedWriter{values: make(map[Slot]*string)}
	if err := fn(staged); err != nil {
		return err
	}

	previous := f.set.GetMap()
	for slot, v := range staged.values {
		if v == nil {
			f.set.Delete(string(slot))
		} else {
			f.set.Set(string(slot), *v)
		}
	}

	if err := f.conf.Checkpoint(); err != nil {
		for slot := range staged.values {
			if old, ok := previous[string(slot)]; ok {
				f.set.Set(string(slot), old)
			} else {
				f.set.Delete(string(slot))
			}
		}
		f.logger.Errorf(8212, "session checkpoint failed: %s", err.Error())
		return fmt.Errorf("session write failed: %w", err)
	}
	return nil
}
