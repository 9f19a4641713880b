package shipping

import "time"

// Method is a delivery option offered at checkout. Costs are whole PKR.
type Method struct {
	ID            uint      `json:"id"`
	Code          string    `json:"code"`
	Label         string    `json:"label"`
	Cost          int64     `json:"cost"`
	EstimatedDays int       `json:"estimated_days"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	CodeStandard  = "standard"
	CodeExpress   = "express"
	CodeOvernight = "overnight"
)

type UpsertMethodParams struct {
	Code          string
	Label         string
	Cost          int64
	EstimatedDays int
	Active        bool
}
