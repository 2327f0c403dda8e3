package dto

// FavoriteRequest names the posting being saved.
type FavoriteRequest struct {
	JobID int64 `json:"job_id"`
}
