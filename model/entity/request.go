package entity

import (
	"encoding/json"
	"time"
)

const (
	RequestPending   = "pending"
	RequestApproved  = "approved"
	RequestRejected  = "rejected"
	RequestFulfilled = "fulfilled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	UrgencyNormal = "normal"
	UrgencyUrgent = "urgent"
)

// Request is an employee PPE request. Items live in the request_items table.
type Request struct {
	ID            int64         `json:"id,omitempty"`
	RequesterID   int64         `json:"requester_id"`
	RequesterName string        `json:"requester_name"`
	Status        string        `json:"status"`
	Priority      string        `json:"priority"`
	CostCenter    string        `json:"cost_center"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
	Items         []RequestItem `json:"items"`
}

// EncodeRow drops the items, which are stored separately.
func (Request) EncodeRow(row map[string]interface{}) {
	delete(row, "items")
}

// RequestItem is one line of a request or a delivery.
type RequestItem struct {
	ID        int64  `json:"id,omitempty"`
	RequestID int64  `json:"request_id,omitempty"`
	ItemID    int64  `json:"item_id"`
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Urgency   string `json:"urgency"`
}

// DeliveryRecord is a signed hand-over of PPE to an employee.
type DeliveryRecord struct {
	ID                int64         `json:"id,omitempty"`
	RequestID         int64         `json:"request_id"`
	EmployeeID        int64         `json:"employee_id"`
	EmployeeName      string        `json:"employee_name"`
	Items             []RequestItem `json:"items"`
	DeliveryDate      Date          `json:"delivery_date"`
	Signature         string        `json:"signature"`
	Supervisor        string        `json:"supervisor"`
	SignatureImageURL string        `json:"signature_image_url"`
	EPISheetPDFURL    string        `json:"epi_sheet_pdf_url"`
}

// EncodeRow stores the item list as JSON text.
func (d DeliveryRecord) EncodeRow(row map[string]interface{}) {
	b, err := json.Marshal(d.Items)
	if err != nil {
		b = []byte("[]")
	}
	row["items"] = string(b)
}
