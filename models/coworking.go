package models

type CoworkingSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`
}

type CoworkingDetail struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Capacity    int      `json:"capacity"`
	OpensAt     string   `json:"opens_at"`
	ClosesAt    string   `json:"closes_at"`
	Images      []string `json:"images"`
}
