// Package config provides configuration management for netpulse.
//
// Configuration is loaded from multiple sources and merged in a specific
// order, with later sources overriding earlier ones.
//
// # Configuration Layers
//
//  1. Default Configuration (embedded in binary)
//     - stdio transport, localhost:8080 for SSE, info logging
//     - 200000 byte response budget
//
//  2. User Configuration (~/.config/netpulse/config.yaml)
//     - Personal credentials and preferences
//
//  3. Project Configuration (./.netpulse/config.yaml)
//     - Settings shared by a team via version control
//
//  4. Environment Variables
//     - NETPULSE_API_HOST, NETPULSE_API_KEY, NETPULSE_ACCOUNT_ID
//     - NETPULSE_MAX_RESPONSE_LENGTH (non-numeric or non-positive restores the default)
//     - NETPULSE_LOG_LEVEL
//
// # Configuration Structure
//
//	api:
//	  host: "api.example.net"
//	  key: "${NETPULSE_TOKEN}"
//	  accountID: "1234"
//	  maxResponseLength: 100000
//	server:
//	  transport: "sse"   # or "stdio"
//	  host: "localhost"
//	  port: 8080
//	logging:
//	  level: "debug"
//
// # Environment Variable Expansion
//
// ${VAR} and $VAR references in configuration files are expanded from the
// process environment before the YAML is parsed.
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
