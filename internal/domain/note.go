package domain

import "time"

type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=50,nonul"`
	Content string `json:"content" validate:"required,min=1,max=10000,nonul"`
}

// UpdateNoteRequest carries a partial update. A nil field was not supplied
// by the caller and is left untouched.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitnil,min=3,max=50,nonul"`
	Content *string `json:"content" validate:"omitnil,min=1,max=10000,nonul"`
}

// IsEmpty reports whether no field was supplied.
func (r *UpdateNoteRequest) IsEmpty() bool {
	return r == nil || (r.Title == nil && r.Content == nil)
}

type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewNoteResponse(n *Note) *NoteResponse {
	return &NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
