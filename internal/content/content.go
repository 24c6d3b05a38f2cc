// Package content holds the static text shown around the calculator: contact
// links, disclaimers and the formula legend.
package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Link struct {
	Name  string `yaml:"name" json:"name"`
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

type Content struct {
	Title       string   `yaml:"title" json:"title"`
	Links       []Link   `yaml:"links" json:"links"`
	Disclaimers []string `yaml:"disclaimers" json:"disclaimers"`
	Formulas    []string `yaml:"formulas" json:"formulas"`
}

// Default returns the built-in page content.
func Default() Content {
	return Content{
		Title: "Animal import cost calculator",
		Links: []Link{
			{Name: "instagram", Label: "Instagram", URL: "https://www.instagram.com/taiwancasalin/"},
			{Name: "line", Label: "LINE", URL: "https://lin.ee/aroKUs6"},
		},
		Disclaimers: []string{
			"This calculation is an estimate only; the final price is subject to the actual transaction.",
			"Exchange rates fluctuate; confirm the current rate before paying.",
			"PayPal fees and exchange rates may vary with PayPal policy.",
		},
		Formulas: []string{
			"Total (USD) = purchase price + shipping fee",
			"PayPal fee = total × 0.044",
			"PayPal deduction (USD) = total × 1.044",
			"PayPal deduction (TWD) = PayPal deduction (USD) × exchange rate",
			"Service fee = purchase price × exchange rate × 0.4",
			"Total price = PayPal deduction (TWD) + service fee",
		},
	}
}

// Load reads a YAML file over the defaults. Sections left empty in the file
// keep their default value. An empty path returns the defaults.
func Load(path string) (Content, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read content file: %w", err)
	}

	var override Content
	if err := yaml.Unmarshal(data, &override); err != nil {
		return c, fmt.Errorf("parse content file: %w", err)
	}

	if override.Title != "" {
		c.Title = override.Title
	}
	if len(override.Links) > 0 {
		c.Links = override.Links
	}
	if len(override.Disclaimers) > 0 {
		c.Disclaimers = override.Disclaimers
	}
	if len(override.Formulas) > 0 {
		c.Formulas = override.Formulas
	}
	return c, nil
}
