// Package embedding holds the rate limiting and retry helpers shared by the
// embedding provider adapters in its subpackages.
package embedding
