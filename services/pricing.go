package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"burger-shop/models"

	"github.com/sirupsen/logrus"
)

// Surcharges in minor currency units, keyed by normalized option code.
var defaultSurcharges = map[string]int{
	"double patty": 3500,
	"cheddar":      1000,
	"swiss cheese": 1200,
}

type PricingEngine struct {
	surcharges map[string]int
	log        logrus.FieldLogger
}

func NewPricingEngine(log logrus.FieldLogger) *PricingEngine {
	return &PricingEngine{surcharges: defaultSurcharges, log: log}
}

// NormalizeOption lower-cases a code, trims it and folds '_' and '-' to spaces.
func NormalizeOption(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	code = strings.NewReplacer("_", " ", "-", " ").Replace(code)
	return strings.Join(strings.Fields(code), " ")
}

// NormalizeOptions returns the distinct normalized codes in first-seen order.
func NormalizeOptions(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		n := NormalizeOption(c)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func EncodeOptions(codes []string) (string, error) {
	b, err := json.Marshal(NormalizeOptions(codes))
	if err != nil {
		return "", fmt.Errorf("encode options: %w", err)
	}
	return string(b), nil
}

// DecodeOptions reads the stored form: a JSON array of strings. Empty and null mean no options.
func DecodeOptions(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}, nil
	}
	var codes []string
	if err := json.Unmarshal([]byte(raw), &codes); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrOptionParse, err)
	}
	return NormalizeOptions(codes), nil
}

func (e *PricingEngine) Surcharge(code string) int {
	return e.surcharges[NormalizeOption(code)]
}

// UnitPrice is the base price plus one surcharge per distinct option. Unknown codes add nothing.
func (e *PricingEngine) UnitPrice(basePrice int, options []string) int {
	price := basePrice
	for _, code := range NormalizeOptions(options) {
		price += e.surcharges[code]
	}
	return price
}

// ComputeLineTotal prices a cart line against product. Unreadable option data is priced as no options.
func (e *PricingEngine) ComputeLineTotal(product models.Product, line models.CartLine) int {
	options, _ := e.ResolveOptions(line)
	return e.UnitPrice(product.Price, options) * line.Quantity
}

// ResolveOptions returns the line's options. When the stored form cannot be read it logs the
// degradation and returns no options together with a warning for the caller to surface.
func (e *PricingEngine) ResolveOptions(line models.CartLine) ([]string, string) {
	if line.Options != nil {
		return NormalizeOptions(line.Options), ""
	}
	options, err := DecodeOptions(line.RawOptions)
	if err == nil {
		return options, ""
	}

	e.log.WithFields(logrus.Fields{
		"event":        "option_parse_degraded",
		"user_id":      line.UserID,
		"product_id":   line.ProductID,
		"cart_line_id": line.ID,
	}).WithError(err).Warn("options unreadable, pricing line without surcharges")

	return []string{}, fmt.Sprintf("cart line %d: options could not be read and were priced as none", line.ID)
}

// decodeLenient is DecodeOptions for display paths where a bad blob just shows no options.
func decodeLenient(raw string) []string {
	options, err := DecodeOptions(raw)
	if err != nil {
		return []string{}
	}
	return options
}
