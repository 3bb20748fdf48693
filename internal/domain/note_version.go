package domain

import "time"

type NoteVersion struct {
	ID        int64     `json:"id"`
	NoteID    int64     `json:"note_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type NoteVersionResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNoteVersionResponse(v *NoteVersion) *NoteVersionResponse {
	return &NoteVersionResponse{
		ID:        v.ID,
		Content:   v.Content,
		CreatedAt: v.CreatedAt,
	}
}
