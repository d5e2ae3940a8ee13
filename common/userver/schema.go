//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import (
	"net/http"
	"sync"

	"github.com/UnifyEM/UEMSession/common/interfaces"
)

type HServer struct {
	Headers         Headers
	Routes          Routes
	Listen          string
	HTTPTimeout     int
	HTTPIdleTimeout int
	HandlerTimeout  int
	MaxConcurrent   int
	PenaltyBoxMin   int
	PenaltyBoxMax   int
	HealthHandler   bool
	DefaultHeaders  bool
	Logger          interfaces.Logger
	SEid            uint32 // Starting event ID for logging

	once   sync.Once
	router http.Handler
	mu     sync.Mutex
	server *http.Server
}

// AuthFunc authenticates a request. On success it returns details that
// are passed to the handler in the request context (see AuthDetails). On
// failure it returns the response to send instead.
type AuthFunc func(req *http.Request) (any, *JResponse)

// Route defines a route for the HTTP router. It can include a
// standard handler that returns a http.Handler or a JHandler
// that returns a JResponse structure.
type Route struct {
	Name     string
	Methods  []string
	Pattern  string
	Handler  http.Handler
	JHandler JHandler
	AuthFunc AuthFunc
}

type Routes []Route

type Header struct {
	Key   string
	Value string
}

type Headers []Header

// Response provides a consistent set of fields for API responses
type Response struct {
	Status  string `json:"status"`            // Text Status
	Code    int    `json:"code"`              // HTTP status code
	Details string `json:"details,omitempty"` // optional response details
}

// JHandler is the type of the function to be wrapped
type JHandler func(req *http.Request) JResponse

// JResponse is the structure returned by the wrapped function.
// Cookies are set on the response before the body is written.
type JResponse struct {
	HTTPCode int
	JSONData any
	Cookies  []*http.Cookie
}
