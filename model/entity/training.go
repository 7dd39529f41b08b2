package entity

import "time"

const (
	TrainingValid    = "valid"
	TrainingExpiring = "expiring"
	TrainingExpired  = "expired"
)

// Training is an employee certification with an expiry date.
type Training struct {
	ID             int64  `json:"id,omitempty"`
	UserID         int64  `json:"user_id"`
	UserName       string `json:"user_name"`
	TrainingType   string `json:"training_type"`
	IssueDate      Date   `json:"issue_date"`
	ExpiryDate     Date   `json:"expiry_date"`
	CertificateURL string `json:"certificate_url"`
	Status         string `json:"status"`
}

const (
	PlanPending    = "pending"
	PlanInProgress = "in_progress"
	PlanCompleted  = "completed"
)

// ActionPlan is a corrective action attached to an alert.
type ActionPlan struct {
	ID                 int64     `json:"id,omitempty"`
	AlertID            string    `json:"alert_id"`
	Description        string    `json:"description"`
	AssignedToUserID   int64     `json:"assigned_to_user_id"`
	AssignedToUserName string    `json:"assigned_to_user_name"`
	DueDate            Date      `json:"due_date"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}
