/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package db

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// DefaultCost is the scrypt N parameter for new hashes. The cost is stored
// with each hash so it can be lowered (tests) or raised without breaking
// existing passwords.
const DefaultCost = 32768

var errHashFormat = errors.New("invalid hash format")

// GenerateHash hashes a password as "scrypt$N$salt$hash"
func GenerateHash(password string, cost int) (string, error) {
	if cost <= 1 || cost&(cost-1) != 0 {
		return "", fmt.Errorf("scrypt cost must be a power of two greater than 1, got %d", cost)
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash, err := scrypt.Key([]byte(password), salt, cost, 8, 1, 32)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash: %w", err)
	}

	return fmt.Sprintf("scrypt$%d$%s$%s", cost,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// VerifyHash checks a password against a hash made by GenerateHash
func VerifyHash(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 4 || parts[0] != "scrypt" {
		return false, errHashFormat
	}

	cost, err := strconv.Atoi(parts[1])
	if err != nil {
		return false, errHashFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	comparisonHash, err := scrypt.Key([]byte(password), salt, cost, 8, 1, len(hash))
	if err != nil {
		return false, fmt.Errorf("failed to generate comparison hash: %w", err)
	}

	return subtle.ConstantTimeCompare(hash, comparisonHash) == 1, nil
}
