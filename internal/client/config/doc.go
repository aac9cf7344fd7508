// Package config loads runtime configuration for the assistant terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: ASSISTANT_SERVER_URL, ASSISTANT_TOKEN (a .env file is
//     loaded by the binary before this runs).
//  3. Optional JSON file (see parseJson) selected via -c or -config.
//
// Command-line flags (--server, --token) are owned by the CLI and applied on
// top of the loaded Config.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "2m" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "request_timeout": "2m"
//	}
package config
