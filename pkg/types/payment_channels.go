package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/boticaviva/backend/pkg/enums"
)

// PaymentChannel describes one mobile-payment option displayed at checkout.
type PaymentChannel struct {
	Kind    enums.PaymentChannelKind `json:"kind"`
	Label   string                   `json:"label"`
	Account string                   `json:"account,omitempty"`
	Holder  string                   `json:"holder,omitempty"`
	Active  bool                     `json:"active"`
}

// PaymentChannels is the channel list persisted as JSONB.
type PaymentChannels []PaymentChannel

// Value marshals the channels into JSON for Postgres.
func (p PaymentChannels) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the channel list.
func (p *PaymentChannels) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("payment channels: unsupported scan type %T", value)
	}

	result := PaymentChannels{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*p = result
	return nil
}
