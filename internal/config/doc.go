// Package config defines the rez configuration structure, its loading
// from yaml with environment overrides, and startup validation.
//
// Configuration is resolved in three layers, later layers winning:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. config.yaml in the configured directory
//  3. Environment variables: CIT_BASE_URL, REZ_BASE_URL, REZ_HOST,
//     REZ_PORT, REZ_TRANSPORT
//
// Validate enforces the invariants the rest of the system assumes, most
// importantly that the blacklist clear cadence (auth.sweepInterval) is
// no shorter than the single-use token lifetime (auth.tokenTTL) - the
// one misconfiguration that would make a consumed login token
// replayable.
package config
