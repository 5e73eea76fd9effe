// Package config provides configuration loading and validation for dataapi.
//
// The package handles YAML configuration files, a local .env override,
// environment variables and CLI flags, merged by viper and validated with
// go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. The .env override file, only when AWS_REGION is absent
//  4. Environment variables
//  5. CLI flags
//
// # Environment Variables
//
// The store settings use the names hosting platforms already inject:
//   - AWS_REGION → store.region
//   - S3_BUCKET → store.bucket
//   - AWS_PROFILE → store.profile
//
// Every key is also reachable with the DATAAPI_ prefix:
//   - server.port → DATAAPI_SERVER_PORT
//   - store.backend → DATAAPI_STORE_BACKEND
//   - log.level → DATAAPI_LOG_LEVEL
//
// # Validation
//
// Structural settings fail startup: port range, backend (s3 or filesystem),
// log level, endpoint URL and the object key. Region and bucket are left to
// the first store call.
package config
