package models

import (
	"bytes"
	"database/sql/driver"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID            int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Title         string    `bun:",nullzero" json:"title"`
	Salary        *int      `json:"salary"`
	Equity        *Equity   `json:"equity"`
	CompanyHandle string    `bun:",nullzero" json:"companyHandle"`
	CompanyName   string    `bun:",scanonly" json:"companyName,omitempty"`

	// Relations
	Company *Company `bun:"rel:belongs-to,join:company_handle=handle" json:"company,omitempty"`
}

// Equity is a company ownership fraction in [0, 1], kept as decimal text so
// it round-trips without float rounding. It decodes from either a JSON
// number or a JSON string and always encodes as a string.
type Equity string

func (e *Equity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = Equity(strings.TrimSpace(s))
	case json.Valid(data) && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*e = Equity(data)
	default:
		return &json.UnmarshalTypeError{
			Value: string(data),
			Type:  reflect.TypeOf(float64(0)),
		}
	}
	return nil
}

func (e Equity) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(e))
}


// Value stores the decimal text as-is so SQLite can compare it numerically.
func (e Equity) Value() (driver.Value, error) {
	return string(e), nil
}

func (e *Equity) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*e = ""
	case string:
		*e = Equity(v)
	case []byte:
		*e = Equity(v)
	case float64:
		*e = Equity(strconv.FormatFloat(v, 'f', -1, 64))
	case int64:
		*e = Equity(strconv.FormatInt(v, 10))
	default:
		return errors.Errorf("cannot scan %T into Equity", src)
	}
	return nil
}
