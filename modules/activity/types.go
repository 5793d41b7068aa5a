package activity

// ListActivityRequest selects journal entries.
type ListActivityRequest struct {
	PlayerID string `json:"player_id,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// ListActivityResponse carries journal entries, newest first.
type ListActivityResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}
