// Package config loads runtime configuration for the storefront client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment, optionally seeded from a dotenv file given with -e or -env.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the storefront API
//	-d string   path of the local data file
//	-t int      request timeout (seconds)
//
// Environment
//
//	SHOP_API_BASE_URL, SHOP_GOOGLE_CLIENT_ID, SHOP_DATA_FILE,
//	SHOP_REQUEST_TIMEOUT ("10s"), SHOP_LOG_LEVEL
//
// # JSON schema
//
// Intervals use timex.Duration, so either "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "google_client_id": "",
//	  "data_file": "shopfront.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
package config
