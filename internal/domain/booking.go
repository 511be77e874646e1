package domain

import "encoding/json"

// BookingPayload lives for one submission only and is never stored.
type BookingPayload struct {
	TourTitle     string `json:"tourTitle" validate:"required"`
	ClientName    string `json:"client_name" validate:"min=2,max=100"`
	ClientContact string `json:"client_contact" validate:"intl_phone"`
	DesiredDate   string `json:"desired_date,omitempty" validate:"omitempty,future_date"`
	Pax           int    `json:"pax" validate:"min=1,max=20"`
	ClientMessage string `json:"client_message,omitempty" validate:"max=500"`
	Consent       bool   `json:"consent" validate:"is_true"`
}

type SubmissionResult struct {
	OK        bool            `json:"ok"`
	Mocked    bool            `json:"mocked"`
	RequestID string          `json:"requestId,omitempty"`
	Response  json.RawMessage `json:"response,omitempty"`
}
