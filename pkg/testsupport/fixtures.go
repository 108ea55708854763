// Package testsupport provides fixture helpers shared by resource-client
// tests.
package testsupport

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// LoadReader creates an io.Reader from fixture data.
// Useful for testing functions that accept readers, e.g. uploads.
func LoadReader(t *testing.T, path string) io.Reader {
	t.Helper()

	return strings.NewReader(string(LoadFixture(t, path)))
}
