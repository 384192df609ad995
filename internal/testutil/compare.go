package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// RequireEqual fails t with a readable diff when got and want differ.
// Nil and empty slices or maps compare equal.
func RequireEqual[T any](t testing.TB, got, want T, msgAndArgs ...any) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		if len(msgAndArgs) > 0 {
			if format, ok := msgAndArgs[0].(string); ok {
				t.Logf(format, msgAndArgs[1:]...)
			}
		}
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
