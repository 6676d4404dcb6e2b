package scraper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/use-agent/pricescout/competitor"
)

func testConfig() *competitor.Config {
	return &competitor.Config{
		Key:         "testpharm",
		DisplayName: "Test Pharmacy",
		SearchURL: func(q string) string {
			return "https://shop.example.com/search?q=" + q
		},
		Selectors: competitor.Selectors{
			Item:  []string{".missing-item", ".product-item"},
			Name:  []string{".missing-name", ".product-name", "h3"},
			Price: []string{".product-price", ".price"},
			Link:  []string{"a[href]"},
		},
		NoResultPhrases: []string{"no se encontraron"},
	}
}

const baseURL = "https://shop.example.com/search?q=x"

func TestParseResults_SelectorCascade(t *testing.T) {
	// The first item alternative matches nothing; the second must win.
	html := `<html><body>
		<div class="product-item">
			<span class="product-name">Vitamina C 1000mg</span>
			<span class="product-price">$120.00</span>
			<a href="/producto/vit-c">ver</a>
		</div>
		<div class="product-item">
			<h3>Vitamina D3</h3>
			<span class="price">$85.50</span>
		</div>
	</body></html>`

	out, err := ParseResults(testConfig(), html, baseURL, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NoResults {
		t.Fatal("NoResults = true, want false")
	}
	if len(out.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(out.Candidates))
	}

	first := out.Candidates[0]
	if first.Name != "Vitamina C 1000mg" {
		t.Errorf("name = %q", first.Name)
	}
	if first.PriceText != "$120.00" {
		t.Errorf("priceText = %q", first.PriceText)
	}
	if first.URL != "https://shop.example.com/producto/vit-c" {
		t.Errorf("url = %q, want relative link resolved against the page", first.URL)
	}

	second := out.Candidates[1]
	if second.Name != "Vitamina D3" {
		t.Errorf("name cascade fell through to h3, got %q", second.Name)
	}
	if second.URL != "" {
		t.Errorf("url = %q, want empty for item without link", second.URL)
	}
}

func TestParseResults_NoResultsPhraseWins(t *testing.T) {
	// A genuine no-results page short-circuits even when stray elements
	// match the item selector.
	html := `<html><body>
		<p>No se encontraron resultados para tu búsqueda.</p>
		<div class="product-item"><h3>Producto sugerido</h3></div>
	</body></html>`

	out, err := ParseResults(testConfig(), html, baseURL, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.NoResults {
		t.Fatal("NoResults = false, want true")
	}
	if out.MatchedPhrase != "no se encontraron" {
		t.Errorf("MatchedPhrase = %q", out.MatchedPhrase)
	}
	if len(out.Candidates) != 0 {
		t.Errorf("candidates = %d, want 0", len(out.Candidates))
	}
}

func TestParseResults_CapsInspectedItems(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, `<div class="product-item"><h3>Producto %d</h3><span class="price">$%d</span></div>`, i, i)
	}
	b.WriteString("</body></html>")

	out, err := ParseResults(testConfig(), b.String(), baseURL, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Candidates) != 10 {
		t.Errorf("candidates = %d, want 10 (cap)", len(out.Candidates))
	}
}

func TestParseResults_NamelessItemsSkipped(t *testing.T) {
	html := `<html><body>
		<div class="product-item"><h3>Con nombre</h3></div>
		<div class="product-item"><span class="price">$10</span></div>
		<div class="product-item"><h3>Otro con nombre</h3></div>
	</body></html>`

	out, err := ParseResults(testConfig(), html, baseURL, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(out.Candidates))
	}
	if out.Candidates[0].Name != "Con nombre" || out.Candidates[1].Name != "Otro con nombre" {
		t.Errorf("unexpected candidates: %+v", out.Candidates)
	}
}

func TestParseResults_JSONLDFallback(t *testing.T) {
	t.Run("item list", func(t *testing.T) {
		html := `<html><head>
			<script type="application/ld+json">{
				"@type": "ItemList",
				"itemListElement": [
					{"item": {"name": "Ibuprofeno 400mg", "url": "/p/ibu-400", "offers": {"price": 75.5}}},
					{"item": {"name": "Ibuprofeno 600mg", "offers": {"price": "99.00"}}}
				]
			}</script>
		</head><body><div>nada por selectores</div></body></html>`

		out, err := ParseResults(testConfig(), html, baseURL, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Candidates) != 2 {
			t.Fatalf("candidates = %d, want 2", len(out.Candidates))
		}
		if out.Candidates[0].Name != "Ibuprofeno 400mg" {
			t.Errorf("name = %q", out.Candidates[0].Name)
		}
		if out.Candidates[0].PriceText != "75.5" {
			t.Errorf("numeric price rendered as %q, want \"75.5\"", out.Candidates[0].PriceText)
		}
		if out.Candidates[0].URL != "https://shop.example.com/p/ibu-400" {
			t.Errorf("url = %q", out.Candidates[0].URL)
		}
		if out.Candidates[1].PriceText != "99.00" {
			t.Errorf("string price = %q, want \"99.00\"", out.Candidates[1].PriceText)
		}
	})

	t.Run("single product document", func(t *testing.T) {
		html := `<html><head>
			<script type="application/ld+json">{"@type": "Product", "name": "Paracetamol 500mg", "offers": {"price": 32}}</script>
		</head><body></body></html>`

		out, err := ParseResults(testConfig(), html, baseURL, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Candidates) != 1 {
			t.Fatalf("candidates = %d, want 1", len(out.Candidates))
		}
		if out.Candidates[0].Name != "Paracetamol 500mg" || out.Candidates[0].PriceText != "32" {
			t.Errorf("unexpected candidate: %+v", out.Candidates[0])
		}
	})

	t.Run("offers as array", func(t *testing.T) {
		html := `<html><head>
			<script type="application/ld+json">{"@type": "Product", "name": "Loratadina", "offers": [{"price": "58.90"}]}</script>
		</head><body></body></html>`

		out, err := ParseResults(testConfig(), html, baseURL, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Candidates) != 1 || out.Candidates[0].PriceText != "58.90" {
			t.Errorf("unexpected candidates: %+v", out.Candidates)
		}
	})

	t.Run("malformed block is skipped", func(t *testing.T) {
		html := `<html><head>
			<script type="application/ld+json">{not valid json</script>
			<script type="application/ld+json">{"@type": "Product", "name": "Naproxeno"}</script>
		</head><body></body></html>`

		out, err := ParseResults(testConfig(), html, baseURL, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Candidates) != 1 || out.Candidates[0].Name != "Naproxeno" {
			t.Errorf("unexpected candidates: %+v", out.Candidates)
		}
	})

	t.Run("not consulted when selectors succeed", func(t *testing.T) {
		html := `<html><head>
			<script type="application/ld+json">{"@type": "Product", "name": "Desde JSON-LD"}</script>
		</head><body>
			<div class="product-item"><h3>Desde selectores</h3></div>
		</body></html>`

		out, err := ParseResults(testConfig(), html, baseURL, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Candidates) != 1 || out.Candidates[0].Name != "Desde selectores" {
			t.Errorf("unexpected candidates: %+v", out.Candidates)
		}
	})
}

func TestParseResults_EmptyPage(t *testing.T) {
	out, err := ParseResults(testConfig(), "<html><body></body></html>", baseURL, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NoResults || len(out.Candidates) != 0 {
		t.Errorf("unexpected outcome: %+v", out)
	}
}
