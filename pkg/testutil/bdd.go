package testutil

import "testing"

// Given, When, Then and And run a named subtest per scenario step so a long
// flow such as register, verify, buy and transfer reads top to bottom in the
// test output.
func Given(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return step(t, "Given", desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return step(t, "When", desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return step(t, "Then", desc, fn)
}

func And(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return step(t, "And", desc, fn)
}

// step stops the enclosing scenario once a step fails.
func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	ok := t.Run(keyword+" "+desc, fn)
	if !ok {
		t.FailNow()
	}
	return ok
}
