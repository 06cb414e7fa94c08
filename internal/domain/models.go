package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the server-owned read model shown on the discover page.
type Product struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Merchant      string `json:"merchant"`
	Image         string `json:"image"`
	OriginalPrice Amount `json:"originalPrice"`
	CurrentPrice  Amount `json:"currentPrice"`
	URL           string `json:"url"`
	AffiliateURL  string `json:"affiliateUrl"`
}

// UnmarshalJSON keeps the text of every field, whatever its JSON type, so
// one loosely typed product never fails the whole list.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var aux struct {
		plain
		ID           json.RawMessage `json:"id"`
		Title        json.RawMessage `json:"title"`
		Merchant     json.RawMessage `json:"merchant"`
		Image        json.RawMessage `json:"image"`
		URL          json.RawMessage `json:"url"`
		AffiliateURL json.RawMessage `json:"affiliateUrl"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Product(aux.plain)
	p.ID = rawText(aux.ID)
	p.Title = rawText(aux.Title)
	p.Merchant = rawText(aux.Merchant)
	p.Image = rawText(aux.Image)
	p.URL = rawText(aux.URL)
	p.AffiliateURL = rawText(aux.AffiliateURL)
	return nil
}

// ProductDraft is what the add-product form submits. Every field is sent as typed.
type ProductDraft struct {
	Title         string `json:"title"`
	Merchant      string `json:"merchant"`
	Image         string `json:"image"`
	OriginalPrice string `json:"originalPrice"`
	CurrentPrice  string `json:"currentPrice"`
	URL           string `json:"url"`
	AffiliateURL  string `json:"affiliateUrl"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Amount is a numeric-like price value. The API sends numbers, strings or null;
// decoding keeps the text and never fails on an odd value.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount(rawText(data))
	return nil
}

// Decimal parses the amount the way a browser coerces a number: blank is zero,
// booleans are 0 or 1 and 0x/0o/0b literals are integers. Anything else
// unparsable reports false.
func (a Amount) Decimal() (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(a))
	switch s {
	case "", "false":
		return decimal.Zero, true
	case "true":
		return decimal.NewFromInt(1), true
	}
	if base := radix(s); base != 0 {
		if strings.Contains(s, "_") {
			return decimal.Zero, false
		}
		n, err := strconv.ParseUint(s[2:], base, 63)
		if err != nil {
			return decimal.Zero, false
		}
		return decimal.NewFromInt(int64(n)), true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func radix(s string) int {
	if len(s) < 3 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

func rawText(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ""
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return s
		}
	}
	return string(data)
}
