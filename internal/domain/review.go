package domain

// Review.Date is an ISO date (YYYY-MM-DD) or an RFC 3339 timestamp.
type Review struct {
	ID      string `json:"id"`
	TourID  string `json:"tourId"`
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Date    string `json:"date"`
	Comment string `json:"comment"`
}
