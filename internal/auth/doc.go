// Package auth provides bearer-token authentication for Hawkins Lab Core.
//
// Tokens are HS256-signed JWTs carrying the agent's username and role,
// valid for a fixed 24-hour window by default. There is no user
// database: the playground authenticates one configured credential pair
// and every issued token carries the "agent" role.
//
// Verification is deterministic: signature mismatch, expiry, or a
// non-HS256 algorithm all reject the token with no grace period.
package auth
