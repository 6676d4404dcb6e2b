package competitor

import (
	"reflect"
	"strings"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()

	t.Run("known competitor", func(t *testing.T) {
		cfg, ok := reg.Lookup("guadalajara")
		if !ok {
			t.Fatal("Lookup(guadalajara) = not found")
		}
		if cfg.DisplayName != "Farmacias Guadalajara" {
			t.Errorf("DisplayName = %q", cfg.DisplayName)
		}
		if len(cfg.Selectors.Item) == 0 || len(cfg.NoResultPhrases) == 0 {
			t.Error("configuration is missing selectors or no-result phrases")
		}
	})

	t.Run("unknown competitor", func(t *testing.T) {
		if _, ok := reg.Lookup("walmart"); ok {
			t.Error("Lookup(walmart) = found, want absent")
		}
	})
}

func TestRegistryKeys(t *testing.T) {
	reg := NewRegistry()
	want := []string{"benavides", "guadalajara", "similares"}
	if got := reg.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestSearchURLEncodesQuery(t *testing.T) {
	reg := NewRegistry()
	for _, key := range reg.Keys() {
		cfg, _ := reg.Lookup(key)
		u := cfg.SearchURL("vitamina c 1000")
		if strings.Contains(u, " ") {
			t.Errorf("%s: search URL contains raw spaces: %q", key, u)
		}
		if !strings.HasPrefix(u, "https://") {
			t.Errorf("%s: search URL not absolute: %q", key, u)
		}
	}
}

func TestNoResultPhrasesAreLowercase(t *testing.T) {
	reg := NewRegistry()
	for _, key := range reg.Keys() {
		cfg, _ := reg.Lookup(key)
		for _, phrase := range cfg.NoResultPhrases {
			if phrase != strings.ToLower(phrase) {
				t.Errorf("%s: phrase %q is not lowercase", key, phrase)
			}
		}
	}
}
