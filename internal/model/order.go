package model

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusPrinting   Status = "printing"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
)

// StatusFlow is the production chain in order; an order only ever moves one step forward along it.
var StatusFlow = []Status{StatusPending, StatusProcessing, StatusPrinting, StatusReady, StatusCompleted}

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	for _, v := range StatusFlow {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted
}

// Next returns the following status in the chain. ok is false for the terminal or an unknown status.
func (s Status) Next() (next Status, ok bool) {
	for i, v := range StatusFlow {
		if v == s && i+1 < len(StatusFlow) {
			return StatusFlow[i+1], true
		}
	}
	return s, false
}

type Order struct {
	ID            int64           `json:"id" db:"id"`
	OrderID       string          `json:"order_id" db:"order_id"`
	Name          string          `json:"name" db:"name"`
	Copies        int             `json:"copies" db:"copies"`
	PaperSize     string          `json:"paper_size" db:"paper_size"`
	PrintSide     string          `json:"print_side" db:"print_side"`
	Color         string          `json:"color" db:"color"`
	Total         decimal.Decimal `json:"total" db:"total"`
	Status        Status          `json:"status" db:"status"`
	PaymentMethod *string         `json:"payment_method" db:"payment_method"`
	PaymentStatus *string         `json:"payment_status" db:"payment_status"`
	FileInfo      FileInfo        `json:"file_info" db:"file_info"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// FileInfo is the client's reference to an uploaded file, kept verbatim as JSON.
type FileInfo []byte

func (f FileInfo) Empty() bool {
	trimmed := bytes.TrimSpace(f)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`))
}

func (f FileInfo) MarshalJSON() ([]byte, error) {
	if len(f) == 0 {
		return []byte("null"), nil
	}
	return f, nil
}

func (f *FileInfo) UnmarshalJSON(data []byte) error {
	*f = append((*f)[:0], data...)
	return nil
}

func (f FileInfo) Value() (driver.Value, error) {
	if len(f) == 0 {
		return nil, nil
	}
	return string(f), nil
}

func (f *FileInfo) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = nil
	case []byte:
		*f = append((*f)[:0], v...)
	case string:
		*f = FileInfo(v)
	default:
		return fmt.Errorf("file info: unsupported type %T", src)
	}
	return nil
}
