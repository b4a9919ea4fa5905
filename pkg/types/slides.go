package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PromoSlide is one hero/promotional banner configured by the admin panel.
type PromoSlide struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url,omitempty"`
	Active   bool   `json:"active"`
}

// PromoSlides is the ordered slide list persisted as JSONB.
type PromoSlides []PromoSlide

// Value marshals the slides into JSON for Postgres.
func (s PromoSlides) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the slide list.
func (s *PromoSlides) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("promo slides: unsupported scan type %T", value)
	}

	result := PromoSlides{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*s = result
	return nil
}
