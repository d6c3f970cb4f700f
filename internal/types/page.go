package types

// PageMeta is the pagination block the backend returns with every list
// response. It is authoritative for pagination bounds.
type PageMeta struct {
	CurrentPage    int `json:"current_page"`
	TotalPages     int `json:"total_pages"`
	TotalDataCount int `json:"total_data_count"`
}

// Normalize clamps the meta to current_page >= 1, total_pages >= 1,
// total_data_count >= 0 and current_page <= total_pages.
func (m PageMeta) Normalize() PageMeta {
	if m.TotalPages < 1 {
		m.TotalPages = 1
	}
	if m.CurrentPage < 1 {
		m.CurrentPage = 1
	}
	if m.CurrentPage > m.TotalPages {
		m.CurrentPage = m.TotalPages
	}
	if m.TotalDataCount < 0 {
		m.TotalDataCount = 0
	}
	return m
}

func (m PageMeta) HasMore() bool {
	return m.CurrentPage < m.TotalPages
}
