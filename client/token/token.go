/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package token reads the expiry claim of a compact bearer credential.
//
// The signature is never verified here. The expiry is only used to decide
// when to refresh proactively; authorization trust stays with the server,
// which answers 401/403 to anything it does not accept.
package token

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/UnifyEM/UEMSession/client/autherr"
)

// Claims holds the parts of the payload the client cares about
type Claims struct {
	ExpiresAt time.Time
	Subject   string
}

// payload mirrors the registered claim names. jwt.NumericDate accepts both
// integer and fractional seconds.
type payload struct {
	ExpiresAt *jwt.NumericDate `json:"exp"`
	Subject   string           `json:"sub,omitempty"`
}

// Codec decodes credentials against a clock. The zero value is not usable; call New.
type Codec struct {
	now    func() time.Time
	leeway time.Duration
	parser *jwt.Parser
}

// Option configures a Codec
type Option func(*Codec)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLeeway treats credentials as expired this long before their exp
// claim so that they are refreshed before the server starts rejecting them
func WithLeeway(d time.Duration) Option {
	return func(c *Codec) {
		if d > 0 {
			c.leeway = d
		}
	}
}

func New(options ...Option) *Codec {
	c := &Codec{
		now:    time.Now,
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var defaultCodec = New()

// Decode decodes the payload of credential with the default codec
func Decode(credential string) (Claims, error) {
	return defaultCodec.Decode(credential)
}

// IsExpired reports whether credential is absent, malformed or expired
// according to the default codec
func IsExpired(credential string) bool {
	return defaultCodec.IsExpired(credential)
}

// Decode splits credential on ".", base64url-decodes the middle segment and
// parses it as JSON. A missing exp claim is a decode failure.
func (c *Codec) Decode(credential string) (Claims, error) {
	if credential == "" {
		return Claims{}, &autherr.DecodeError{Reason: "empty credential"}
	}

	segments := strings.Split(credential, ".")
	if len(segments) < 3 {
		return Claims{}, &autherr.DecodeError{Reason: "expected three segments"}
	}

	raw, err := c.parser.DecodeSegment(segments[1])
	if err != nil {
		return Claims{}, &autherr.DecodeError{Reason: "payload is not base64url", Err: err}
	}

	var p payload
	if err = json.Unmarshal(raw, &p); err != nil {
		return Claims{}, &autherr.DecodeError{Reason: "payload is not JSON", Err: err}
	}

	if p.ExpiresAt == nil {
		return Claims{}, &autherr.DecodeError{Reason: "payload has no exp claim"}
	}

	return Claims{ExpiresAt: p.ExpiresAt.Time, Subject: p.Subject}, nil
}

// IsExpired never fails: anything that cannot be decoded is expired
func (c *Codec) IsExpired(credential string) bool {
	claims, err := c.Decode(credential)
	if err != nil {
		return true
	}
	return claims.ExpiresAt.Add(-c.leeway).Before(c.now())
}

// Remaining returns the time left before credential expires. The second
// value is false if the credential cannot be decoded.
func (c *Codec) Remaining(credential string) (time.Duration, bool) {
	claims, err := c.Decode(credential)
	if err != nil {
		return 0, false
	}
	return claims.ExpiresAt.Sub(c.now()), true
}
