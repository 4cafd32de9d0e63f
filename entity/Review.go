package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// StringList stores a []string as a JSON text column, which keeps the schema
// identical on sqlite and postgres.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
}

type Review struct {
	gorm.Model

	UserID    uint       `json:"userId"`
	PlaceID   uint       `json:"placeId"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	ImageURLs StringList `json:"imageUrls" gorm:"type:text"`

	User  *User  `json:"user,omitempty"`
	Place *Place `json:"place,omitempty"`
}
