// Package shared holds helpers used across packages that belong to no
// single domain. The testutil subpackage captures log records in tests.
package shared
