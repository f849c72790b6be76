// Package testutil provides test helpers shared across packages, chiefly an
// in-memory fake of the prediction backend.
package testutil
