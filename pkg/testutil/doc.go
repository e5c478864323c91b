// Package testutil provides fixtures for customs tests.
//
// Key components:
//   - TestProject: a project directory in t.TempDir with a manifest, files
//     and optionally a git repository
//   - Demo: the canonical demo@1.2.0 project used across packages
//
// Fixtures use the real filesystem and real repositories created with
// go-git. All data is defined inline.
package testutil
