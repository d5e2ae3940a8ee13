//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package data

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/UnifyEM/UEMSession/common/fields"
	"github.com/UnifyEM/UEMSession/common/schema"
	"github.com/UnifyEM/UEMSession/server/db"
)

const minPasswordLength = 8

// Register creates an unverified user and issues its verification code
func (d *Data) Register(username, email, password string) (db.UserRecord, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || !strings.Contains(email, "@") {
		return db.UserRecord{}, fmt.Errorf("%w: username and a valid email are required", ErrInvalidRequest)
	}
	if len(password) < minPasswordLength {
		return db.UserRecord{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRequest, minPasswordLength)
	}

	hashed, err := db.GenerateHash(password, d.hashCost)
	if err != nil {
		return db.UserRecord{}, err
	}

	user := db.UserRecord{
		ID:         "U-" + uuid.New().String(),
		Username:   username,
		Email:      email,
		Role:       schema.RoleUnverified,
		HashedPass: hashed,
		Created:    time.Now(),
	}

	key := userKey(email)
	if err = d.database.CreateUser(key, user); err != nil {
		return db.UserRecord{}, err
	}

	if _, err = d.issueVerification(key); err != nil {
		return db.UserRecord{}, err
	}
	return user, nil
}

// Authenticate checks an email and password. LastAuth, LastFail and
// FailCount are updated either way.
func (d *Data) Authenticate(email, password string) (db.UserRecord, error) {
	key := userKey(email)
	user, err := d.database.GetUser(key)
	if err != nil {
		return db.UserRecord{}, ErrAuthFailed
	}

	ok, err := db.VerifyHash(password, user.HashedPass)
	if err != nil {
		return db.UserRecord{}, fmt.Errorf("VerifyHash error: %w", err)
	}

	if !ok {
		user.FailCount++
		user.LastFail = time.Now()
		_ = d.database.SetUser(key, user)
		return db.UserRecord{}, ErrAuthFailed
	}

	user.FailCount = 0
	user.LastAuth = time.Now()
	if err = d.database.SetUser(key, user); err != nil {
		return db.UserRecord{}, err
	}
	return user, nil
}

// UserByID returns the user with the given principal ID
func (d *Data) UserByID(id string) (db.UserRecord, error) {
	_, user, err := d.database.FindUserByID(id)
	return user, err
}

// ForgotPassword issues a reset token if the address is registered. Unknown
// addresses are not reported so the endpoint cannot enumerate accounts.
func (d *Data) ForgotPassword(email string) error {
	key := userKey(email)
	if _, err := d.database.GetUser(key); err != nil {
		d.logger.Info(8661, "password reset requested for unknown address", fields.NewFields(fields.NewField("email", key)))
		return nil
	}

	token := uuid.New().String()
	err := d.database.SetTicket(ticketKey("reset", token), db.TicketRecord{
		UserKey: key,
		Purpose: "reset",
		Expires: time.Now().Add(d.ticketLife)})
	if err != nil {
		return err
	}

	return d.updateMailbox(key, func(m *db.MailboxRecord) { m.ResetToken = token })
}

// ResetPassword redeems a reset token and ends every refresh session of the user
func (d *Data) ResetPassword(token, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRequest, minPasswordLength)
	}

	ticket, err := d.database.TakeTicket(ticketKey("reset", token))
	if err != nil || ticket.Expires.Before(time.Now()) {
		return ErrTicketInvalid
	}

	user, err := d.database.GetUser(ticket.UserKey)
	if err != nil {
		return ErrTicketInvalid
	}

	if user.HashedPass, err = db.GenerateHash(password, d.hashCost); err != nil {
		return err
	}
	if err = d.database.SetUser(ticket.UserKey, user); err != nil {
		return err
	}
	return d.endUserSessions(ticket.UserKey)
}

// VerifyEmail redeems a verification code for the authenticated user
func (d *Data) VerifyEmail(userID, code string) (db.UserRecord, error) {
	key, user, err := d.database.FindUserByID(userID)
	if err != nil {
		return db.UserRecord{}, ErrTicketInvalid
	}

	ticket, err := d.database.TakeTicket(ticketKey("verify", key+":"+strings.TrimSpace(code)))
	if err != nil || ticket.Expires.Before(time.Now()) {
		return db.UserRecord{}, ErrTicketInvalid
	}

	user.Verified = true
	if user.Role == schema.RoleUnverified {
		user.Role = schema.RoleUser
	}
	if err = d.database.SetUser(key, user); err != nil {
		return db.UserRecord{}, err
	}
	return user, nil
}

// Mailbox returns the latest tickets issued to an address
func (d *Data) Mailbox(email string) (db.MailboxRecord, error) {
	m, err := d.database.GetMailbox(userKey(email))
	if errors.Is(err, db.ErrKeyNotFound) {
		return db.MailboxRecord{}, nil
	}
	return m, err
}

func (d *Data) issueVerification(key string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	err = d.database.SetTicket(ticketKey("verify", key+":"+code), db.TicketRecord{
		UserKey: key,
		Purpose: "verify",
		Expires: time.Now().Add(d.ticketLife)})
	if err != nil {
		return "", err
	}

	return code, d.updateMailbox(key, func(m *db.MailboxRecord) { m.VerificationCode = code })
}

func (d *Data) updateMailbox(key string, fn func(*db.MailboxRecord)) error {
	m, err := d.database.GetMailbox(key)
	if err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return err
	}
	fn(&m)
	return d.database.SetMailbox(key, m)
}

func ticketKey(purpose, id string) string {
	return purpose + ":" + id
}
