//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/UnifyEM/UEMSession/common/fields"
)

type ctxKey int

const authDetailsKey ctxKey = 0

// AuthDetails returns what the route's AuthFunc returned for this request
func AuthDetails(req *http.Request) any {
	return req.Context().Value(authDetailsKey)
}

// GetParam retrieves a path variable from the request URL
func GetParam(req *http.Request, param string) string {
	return mux.Vars(req)[param]
}

// ResponseWriterWrapper wraps a http.ResponseWriter to capture the status code
type ResponseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code
func (rw *ResponseWriterWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Wrapper wraps a http.Handler to add standard headers, logging, and optionally authentication
func (s *HServer) Wrapper(handlerName string, h http.Handler, authFunc AuthFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		startTime := time.Now()
		src := RemoteIP(req)

		// Headers must be set before anything is written
		for _, header := range s.Headers {
			w.Header().Set(header.Key, header.Value)
		}

		rw := &ResponseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		// Check for authentication
		if authFunc != nil {
			details, failure := authFunc(req)
			if failure != nil {
				s.Logger.Warning(s.SEid+12,
					"authentication failure",
					fields.NewFields(
						fields.NewField("src_ip", src),
						fields.NewField("method", req.Method),
						fields.NewField("uri", req.URL.Path),
						fields.NewField("handler", handlerName)))

				// Impose a time penalty for failed authentication
				s.PenaltyBox()
				s.writeJSON(rw, req, handlerName, *failure)
				return
			}
			req = req.WithContext(context.WithValue(req.Context(), authDetailsKey, details))
		}

		ctx, cancel := context.WithTimeout(req.Context(), time.Duration(s.HandlerTimeout)*time.Second)
		defer cancel()
		req = req.WithContext(ctx)

		h.ServeHTTP(rw, req)

		logFields := fields.NewFields(
			fields.NewField("code", rw.statusCode),
			fields.NewField("src_ip", src),
			fields.NewField("method", req.Method),
			fields.NewField("uri", req.URL.Path),
			fields.NewField("handler", handlerName),
			fields.NewField("duration", fmt.Sprintf("%.4f", time.Since(startTime).Seconds())))

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logFields.Append(fields.NewField("timeout", "true"))
		}

		s.Logger.Info(s.SEid+10, "HTTP", logFields)
	})
}

// JWrapper wraps a JHandler to a standard http.Handler
func (s *HServer) JWrapper(name string, h JHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.writeJSON(w, req, name, h(req))
	})
}

func (s *HServer) writeJSON(w http.ResponseWriter, req *http.Request, name string, resp JResponse) {
	for _, cookie := range resp.Cookies {
		http.SetCookie(w, cookie)
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(resp.HTTPCode)

	if err := json.NewEncoder(w).Encode(resp.JSONData); err != nil {
		s.Logger.Error(s.SEid+11,
			"error writing response",
			fields.NewFields(
				fields.NewField("error", err.Error()),
				fields.NewField("src_ip", RemoteIP(req)),
				fields.NewField("method", req.Method),
				fields.NewField("uri", req.URL.Path),
				fields.NewField("handler", name)))
	}
}

// RemoteIP returns the remote IP address of the client, excluding the port number
func RemoteIP(req *http.Request) string {
	// The X-Forwarded-For header can contain multiple IPs, take the first one
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return ip
}
