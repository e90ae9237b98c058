// Package config loads runtime configuration for the EventHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "storage_path": "/home/me/.config/eventhub/storage.db",
//	  "request_timeout": "10s",
//	  "page_size": 6,
//	  "verbose": false
//	}
package config
