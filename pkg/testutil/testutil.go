// Package testutil contains helpers shared by tests.
package testutil
