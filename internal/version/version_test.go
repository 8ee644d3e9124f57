// ABOUTME: Tests for version constants
// ABOUTME: Ensures version information is properly defined
package version

import (
	"strings"
	"testing"
)

func TestVersionDefined(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestProductDefined(t *testing.T) {
	if Product == "" {
		t.Error("Product should not be empty")
	}
}

func TestManufacturerDefined(t *testing.T) {
	if Manufacturer == "" {
		t.Error("Manufacturer should not be empty")
	}
}

func TestVersionFormat(t *testing.T) {
	// Version should be dotted like "0.1.0"
	if strings.Count(Version, ".") != 2 {
		t.Errorf("expected dotted version, got %q", Version)
	}

	if len(Version) > 100 {
		t.Error("Version string is unreasonably long")
	}
}

func TestString(t *testing.T) {
	got := String()
	if !strings.HasPrefix(got, Product) {
		t.Errorf("expected %q to start with product name", got)
	}
	if !strings.HasSuffix(got, Version) {
		t.Errorf("expected %q to end with version", got)
	}
}
