package domain

import (
	"bytes"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PromotionID is the upstream identifier. It arrives either as a JSON number or
// as a string depending on the endpoint.
type PromotionID string

func (id *PromotionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PromotionID(strings.TrimSpace(s))
		return nil
	}

	var n jsoniter.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = PromotionID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers so the upstream Integer id binds.
func (id PromotionID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id PromotionID) String() string {
	return string(id)
}

type PromotionColor string

const (
	ColorBlue   PromotionColor = "blue"
	ColorGreen  PromotionColor = "green"
	ColorPurple PromotionColor = "purple"
	ColorOrange PromotionColor = "orange"
	ColorRed    PromotionColor = "red"
	ColorPink   PromotionColor = "pink"
)

var promotionColors = map[PromotionColor]struct{}{
	ColorBlue:   {},
	ColorGreen:  {},
	ColorPurple: {},
	ColorOrange: {},
	ColorRed:    {},
	ColorPink:   {},
}

// ParseColor normalizes a color name, falling back to blue.
func ParseColor(value string) PromotionColor {
	c := PromotionColor(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := promotionColors[c]; ok {
		return c
	}
	return ColorBlue
}

func (c *PromotionColor) UnmarshalJSON(data []byte) error {
	var s string
	if !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	*c = ParseColor(s)
	return nil
}

type PromotionType string

const (
	PromotionTypeSeasonal     PromotionType = "seasonal"
	PromotionTypeEarlyBird    PromotionType = "early_bird"
	PromotionTypeLastMinute   PromotionType = "last_minute"
	PromotionTypeGroup        PromotionType = "group"
	PromotionTypeFlashSale    PromotionType = "flash_sale"
	PromotionTypeLoyalty      PromotionType = "loyalty"
	PromotionTypeSpecialEvent PromotionType = "special_event"
)

// Promotion is a time-bounded offer on a tour package. StartDate and EndDate
// are calendar days ("2006-01-02"); the remaining fields are display metadata.
type Promotion struct {
	ID              PromotionID    `json:"id,omitempty"`
	Title           string         `json:"title"`
	StartDate       string         `json:"startDate"`
	EndDate         string         `json:"endDate"`
	IsActive        bool           `json:"isActive"`
	Color           PromotionColor `json:"color"`
	Description     string         `json:"description,omitempty"`
	Time            string         `json:"time,omitempty"`
	Price           string         `json:"price,omitempty"`
	OriginalPrice   string         `json:"originalPrice,omitempty"`
	Discount        string         `json:"discount,omitempty"`
	Duration        string         `json:"duration,omitempty"`
	MaxParticipants *int           `json:"maxParticipants,omitempty"`
	PromotionType   PromotionType  `json:"promotionType,omitempty"`
	Terms           string         `json:"terms,omitempty"`
}

// PromotionInput is the body accepted when staff create or edit a promotion.
// IsActive is a pointer so an omitted flag can default to true on create.
type PromotionInput struct {
	Title           string        `json:"title"`
	StartDate       string        `json:"startDate"`
	EndDate         string        `json:"endDate"`
	IsActive        *bool         `json:"isActive"`
	Color           string        `json:"color"`
	Description     string        `json:"description"`
	Time            string        `json:"time"`
	Price           string        `json:"price"`
	OriginalPrice   string        `json:"originalPrice"`
	Discount        string        `json:"discount"`
	Duration        string        `json:"duration"`
	MaxParticipants *int          `json:"maxParticipants"`
	PromotionType   PromotionType `json:"promotionType"`
	Terms           string        `json:"terms"`
}

// PromotionSummary feeds the header of the public calendar.
type PromotionSummary struct {
	ActiveCount int          `json:"active_count"`
	Upcoming    []*Promotion `json:"upcoming"`
}
