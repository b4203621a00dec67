package entity

type Document struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	UploadDate string `json:"uploadDate"`
	Category   string `json:"category"`
}
