//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import (
	"math/rand/v2"
	"net/http"
	"time"
)

// HandlerHealth implements a health check for load balancers, etc.
func (s *HServer) HandlerHealth(_ *http.Request) JResponse {
	return JResponse{
		HTTPCode: http.StatusOK,
		JSONData: Response{Status: "ok", Code: http.StatusOK, Details: "health check ok"}}
}

func (s *HServer) Handler401(_ *http.Request) JResponse {
	s.PenaltyBox()
	return JResponse{
		HTTPCode: http.StatusUnauthorized,
		JSONData: Response{Details: "not authorized", Status: "error", Code: http.StatusUnauthorized}}
}

func (s *HServer) Handler404(_ *http.Request) JResponse {
	s.PenaltyBox()
	return JResponse{
		HTTPCode: http.StatusNotFound,
		JSONData: Response{Details: "object does not exist", Status: "error", Code: http.StatusNotFound}}
}

func (s *HServer) Handler405(_ *http.Request) JResponse {
	s.PenaltyBox()
	return JResponse{
		HTTPCode: http.StatusMethodNotAllowed,
		JSONData: Response{Details: "method not allowed", Status: "error", Code: http.StatusMethodNotAllowed}}
}

// PenaltyBox imposes a delay between PenaltyBoxMin and PenaltyBoxMax milliseconds
func (s *HServer) PenaltyBox() {
	if s.PenaltyBoxMax == 0 || s.PenaltyBoxMin > s.PenaltyBoxMax {
		return
	}

	delay := s.PenaltyBoxMin
	if s.PenaltyBoxMax > s.PenaltyBoxMin {
		delay += rand.IntN(s.PenaltyBoxMax - s.PenaltyBoxMin)
	}
	time.Sleep(time.Duration(delay) * time.Millisecond)
}
