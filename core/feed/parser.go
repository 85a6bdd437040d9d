package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Offer is one line item extracted from the price feed. Offers are
// transient: they are produced fresh on every run and never persisted.
type Offer struct {
	// ExternalSKU is the marketplace identifier for the product.
	ExternalSKU string
	// Price is the feed price, always positive.
	Price decimal.Decimal
	// DisplayName is the free-text product name, if the feed carried one.
	// Used only for fuzzy matching.
	DisplayName string
}

// Parser downloads and decodes marketplace XML price feeds.
type Parser struct {
	client *http.Client
	logger *zap.Logger
}

// NewParser creates a feed parser with a bounded fetch timeout.
func NewParser(cfg Config, logger *zap.Logger) *Parser {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &Parser{
		client: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}
}

// Fetch retrieves the raw feed document. Network errors, timeouts and
// non-2xx responses are returned as *FetchError.
func (p *Parser) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	p.logger.Debug("Feed downloaded", zap.String("url", url), zap.Int("bytes", len(data)))
	return data, nil
}

// vendorCatalog is the marketplace-specific feed shape:
// <vendor_catalog><offers><offer sku="...">...</offer></offers></vendor_catalog>
type vendorCatalog struct {
	Offers struct {
		Offer []offerNode `xml:"offer"`
	} `xml:"offers"`
}

// shopCatalog is the generic shop feed shape:
// <shop_catalog><shop><offers><offer id="...">...</offer></offers></shop></shop_catalog>
type shopCatalog struct {
	Shop struct {
		Offers struct {
			Offer []offerNode `xml:"offer"`
		} `xml:"offers"`
	} `xml:"shop"`
}

// offerNode covers the superset of fields across both feed shapes.
type offerNode struct {
	SKU         string `xml:"sku,attr"`
	ID          string `xml:"id,attr"`
	Price       string `xml:"price"`
	Model       string `xml:"model"`
	Name        string `xml:"name"`
	Description string `xml:"description"`
}

// Parse decodes a feed document into offers. It returns the offers, the
// number of nodes dropped for missing SKU or non-positive price, and a
// *SchemaError if the document shape is not recognized.
//
// Single-offer documents decode to one-element slices; they are not a
// special case.
func (p *Parser) Parse(data []byte) ([]Offer, int, error) {
	root, err := rootElement(data)
	if err != nil {
		return nil, 0, &SchemaError{Err: err}
	}

	var nodes []offerNode
	switch root {
	case "vendor_catalog":
		var doc vendorCatalog
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, 0, &SchemaError{Root: root, Err: err}
		}
		nodes = doc.Offers.Offer
	case "shop_catalog":
		var doc shopCatalog
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, 0, &SchemaError{Root: root, Err: err}
		}
		nodes = doc.Shop.Offers.Offer
	default:
		return nil, 0, &SchemaError{Root: root}
	}

	offers := make([]Offer, 0, len(nodes))
	dropped := 0

	for _, node := range nodes {
		offer, ok := extractOffer(node)
		if !ok {
			dropped++
			continue
		}
		offers = append(offers, offer)
	}

	if dropped > 0 {
		p.logger.Warn("Dropped feed offers with missing SKU or invalid price",
			zap.Int("dropped", dropped), zap.Int("kept", len(offers)))
	}

	return offers, dropped, nil
}

// FetchAndParse is a convenience wrapper combining Fetch and Parse.
func (p *Parser) FetchAndParse(ctx context.Context, url string) ([]Offer, int, error) {
	data, err := p.Fetch(ctx, url)
	if err != nil {
		return nil, 0, err
	}
	return p.Parse(data)
}

// extractOffer validates one feed node. The explicit sku attribute is
// preferred; the generic id attribute is the fallback. Nodes without an
// identifier or with a non-positive price are rejected.
func extractOffer(node offerNode) (Offer, bool) {
	sku := strings.TrimSpace(node.SKU)
	if sku == "" {
		sku = strings.TrimSpace(node.ID)
	}
	if sku == "" {
		return Offer{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(node.Price))
	if err != nil || !price.IsPositive() {
		return Offer{}, false
	}

	name := strings.TrimSpace(node.Model)
	if name == "" {
		name = strings.TrimSpace(node.Name)
	}
	if name == "" {
		name = strings.TrimSpace(node.Description)
	}

	return Offer{ExternalSKU: sku, Price: price, DisplayName: name}, true
}

// rootElement returns the name of the document's top-level element.
func rootElement(data []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			return "", fmt.Errorf("no root element: %w", err)
		}
		if start, ok := token.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}
