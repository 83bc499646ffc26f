package assets

import (
	"errors"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadPart_Fallback(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writePart(t, base, "styles", "<custom/>")

	resolver, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom part wins", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadPart("styles")
		if err != nil {
			t.Fatalf("LoadPart() error = %v", err)
		}
		if got != "<custom/>" {
			t.Errorf("LoadPart() = %q, want custom content", got)
		}
	})

	t.Run("missing custom part falls back to embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadPart("settings")
		if err != nil {
			t.Fatalf("LoadPart() error = %v", err)
		}
		embedded, _ := NewEmbeddedLoader().LoadPart("settings")
		if got != embedded {
			t.Error("LoadPart() did not return embedded settings")
		}
	})

	t.Run("validation errors are not masked", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadPart("../styles")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadPart() error = %v, want ErrInvalidAssetName", err)
		}
	})
}
