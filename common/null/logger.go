//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package null

import (
	"github.com/UnifyEM/UEMSession/common/interfaces"
)

// Discard implements interfaces.Logger and drops every entry.
// Library callers that do not supply a logger get one of these.
type Discard struct{}

func Logger() interfaces.Logger {
	return Discard{}
}

func (Discard) Debug(_ uint32, _ string, _ interfaces.Fields)   {}
func (Discard) Info(_ uint32, _ string, _ interfaces.Fields)    {}
func (Discard) Warning(_ uint32, _ string, _ interfaces.Fields) {}
func (Discard) Error(_ uint32, _ string, _ interfaces.Fields)   {}
func (Discard) Debugf(_ uint32, _ string, _ ...any)             {}
func (Discard) Infof(_ uint32, _ string, _ ...any)              {}
func (Discard) Warningf(_ uint32, _ string, _ ...any)           {}
func (Discard) Errorf(_ uint32, _ string, _ ...any)             {}
