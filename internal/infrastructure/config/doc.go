// Package config loads and validates Hawkins Lab Core configuration.
//
// Configuration is layered:
//
//  1. Hardcoded defaults
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern HAWKINS_SECTION_KEY, for
// example HAWKINS_JWT_SECRET or HAWKINS_SERVER_PORT. Secrets (the JWT
// secret, the API key) should always be supplied via the environment in
// real deployments; the defaults exist so the playground runs out of
// the box.
package config
