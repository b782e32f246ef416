// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity helpers for elections and voters.

# Election Codes

Election codes are short base62 strings built from 8 random bytes:

	code, err := auth.GenerateElectionCode()

# Creator Identity

An election carries its creator's public key and fingerprint so that later
operations (closing the election) can be authenticated:

	fp := auth.Fingerprint(pubKey)
	err := auth.VerifyCreator(fp, pubKey)

The fingerprint is the hex SHA-256 of the trimmed key text.

# Voter Hashing

Voter identities are never stored in the clear:

	hash := auth.HashVoterID(voterID, salt)

Returns the first 16 bytes (32 hex chars) of HMAC-SHA256.
*/
package auth
