/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package token

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/UEMSession/client/autherr"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestDecode(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	claims, err := Decode(sign(t, jwt.MapClaims{"exp": exp, "sub": "alice"}))
	require.NoError(t, err)
	assert.Equal(t, exp, claims.ExpiresAt.Unix())
	assert.Equal(t, "alice", claims.Subject)
}

func TestIsExpiredPastAndFuture(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New(WithClock(func() time.Time { return now }))

	for _, offset := range []int64{-86400, -10, -1} {
		assert.True(t, c.IsExpired(sign(t, jwt.MapClaims{"exp": now.Unix() + offset})), "offset %d", offset)
	}
	for _, offset := range []int64{1, 10, 86400} {
		assert.False(t, c.IsExpired(sign(t, jwt.MapClaims{"exp": now.Unix() + offset})), "offset %d", offset)
	}
}

func TestIsExpiredAtExactSecond(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New(WithClock(func() time.Time { return now }))
	// exp equal to now is not less than now
	assert.False(t, c.IsExpired(sign(t, jwt.MapClaims{"exp": now.Unix()})))
}

func TestIsExpiredMalformed(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"alice"}`))
	notJSON := base64.RawURLEncoding.EncodeToString([]byte(`not json`))
	stringExp := base64.RawURLEncoding.EncodeToString([]byte(`{"exp":"tomorrow"}`))

	for _, credential := range []string{
		"",
		"abc",
		"a.b",
		"a.%%%.c",
		"h." + notJSON + ".s",
		"h." + payload + ".s",
		"h." + stringExp + ".s",
	} {
		assert.True(t, IsExpired(credential), "credential %q", credential)
	}
}

func TestDecodeErrorType(t *testing.T) {
	_, err := Decode("only.two")
	var de *autherr.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "expected three segments", de.Reason)
}

func TestDecodeUnsignedAndPadded(t *testing.T) {
	// The signature segment is never inspected and padding is tolerated
	body := base64.URLEncoding.EncodeToString([]byte(`{"exp":4102444800}`))
	claims, err := Decode("eyJhbGciOiJub25lIn0." + body + ".")
	require.NoError(t, err)
	assert.Equal(t, int64(4102444800), claims.ExpiresAt.Unix())
}

func TestFractionalExp(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New(WithClock(func() time.Time { return now }))
	body := base64.RawURLEncoding.EncodeToString([]byte(`{"exp":1699999999.5}`))
	assert.True(t, c.IsExpired("h."+body+".s"))
}

func TestLeeway(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New(WithClock(func() time.Time { return now }), WithLeeway(30*time.Second))

	assert.True(t, c.IsExpired(sign(t, jwt.MapClaims{"exp": now.Unix() + 20})))
	assert.False(t, c.IsExpired(sign(t, jwt.MapClaims{"exp": now.Unix() + 60})))
}

func TestRemaining(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New(WithClock(func() time.Time { return now }))

	d, ok := c.Remaining(sign(t, jwt.MapClaims{"exp": now.Unix() + 90}))
	assert.True(t, ok)
	assert.Equal(t, 90*time.Second, d)

	_, ok = c.Remaining("garbage")
	assert.False(t, ok)
}
