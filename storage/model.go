package storage

type AuditRecord struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Version           string `json:"version"`
	TotalDependencies int    `json:"total_dependencies"`
	Info              int    `json:"info"`
	Low               int    `json:"low"`
	Moderate          int    `json:"moderate"`
	High              int    `json:"high"`
	Critical          int    `json:"critical"`
	Result            string `json:"result,omitempty"`
	CreatedAt         string `json:"created_at"`
}
