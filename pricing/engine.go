// Package pricing implements the area-pricing table: products whose
// category/type is registered here are billed by width × length
// instead of by the variant's flat list price.
package pricing

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"obraexpress-store/utils"
)

// AreaPricingConfig is the on-disk configuration structure. Categories
// is ordered: lookup is first match wins, so broader entries belong
// after the specific ones.
type AreaPricingConfig struct {
	Currency   string          `json:"currency"`
	Categories []CategoryEntry `json:"categories"`
}

// CategoryEntry registers the product types of a category that are
// area priced, with a tax-inclusive rate per square meter.
type CategoryEntry struct {
	Category     string   `json:"category"`
	IncludeTypes []string `json:"includeTypes"`
	ExcludeTypes []string `json:"excludeTypes"`
	PricePerM2   int      `json:"pricePerM2"`
	MinAreaM2    float64  `json:"minAreaM2"`
}

// Engine resolves final unit prices from the area-pricing config.
type Engine struct {
	config *AreaPricingConfig
}

var engineInstance *Engine

// NewEngine loads and validates the pricing config once; subsequent
// calls return the existing instance.
func NewEngine(configPath string) (*Engine, error) {
	if engineInstance != nil {
		return engineInstance, nil
	}

	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing config: %w", err)
	}

	var config AreaPricingConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}

	engineInstance = &Engine{config: &config}
	log.Printf("✅ PricingEngine: Successfully loaded area pricing config from %s", configPath)
	return engineInstance, nil
}

func validateConfig(config *AreaPricingConfig) error {
	if config.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if len(config.Categories) == 0 {
		return fmt.Errorf("categories are required")
	}
	for i, entry := range config.Categories {
		if entry.Category == "" {
			return fmt.Errorf("entry %d: category is required", i)
		}
		if entry.PricePerM2 <= 0 {
			return fmt.Errorf("category %s: pricePerM2 must be positive", entry.Category)
		}
	}
	return nil
}

// GetEngine returns the singleton engine, or nil if NewEngine has not
// run yet.
func GetEngine() *Engine {
	return engineInstance
}

// ResetForTest discards the singleton so tests can load fixtures.
func ResetForTest() {
	engineInstance = nil
}

// entryFor finds the category entry covering categoria/tipo. Entries
// are evaluated in config order, first match wins. Category match is
// case-insensitive by substring, type match is exact against
// includeTypes minus excludeTypes; an empty includeTypes list covers
// every type of the category. An entry that matches the category but
// not the type does not claim the product; later entries still get a
// chance.
func (e *Engine) entryFor(categoria, tipo string) (CategoryEntry, bool) {
	catLower := strings.ToLower(categoria)
entries:
	for _, entry := range e.config.Categories {
		if !strings.Contains(catLower, strings.ToLower(entry.Category)) {
			continue
		}
		for _, excluded := range entry.ExcludeTypes {
			if excluded == tipo {
				continue entries
			}
		}
		if len(entry.IncludeTypes) == 0 {
			return entry, true
		}
		for _, included := range entry.IncludeTypes {
			if included == tipo {
				return entry, true
			}
		}
	}
	return CategoryEntry{}, false
}

// IsAreaPriced reports whether the category/type pair is registered
// for area pricing.
func (e *Engine) IsAreaPriced(categoria, tipo string) bool {
	_, ok := e.entryFor(categoria, tipo)
	return ok
}

// FinalUnitPrice computes the unit price for a configured variant.
// Registered category/type pairs are billed per square meter of
// ancho × largo (floored at the entry's minimum billable area); all
// other products keep their flat list price. Unusable dimensions
// degrade to the list price rather than failing.
func (e *Engine) FinalUnitPrice(categoria, tipo, ancho, largo string, listPrice int) int {
	entry, ok := e.entryFor(categoria, tipo)
	if !ok {
		return listPrice
	}

	area := utils.ParseDimension(ancho) * utils.ParseDimension(largo)
	if area <= 0 {
		return listPrice
	}
	if area < entry.MinAreaM2 {
		area = entry.MinAreaM2
	}

	price := int(math.Round(area * float64(entry.PricePerM2)))
	log.Printf("💰 FinalUnitPrice: %s/%s %.3f m² × %d = %d", categoria, tipo, area, entry.PricePerM2, price)
	return price
}
