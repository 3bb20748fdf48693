package domain

type NoteSummary struct {
	NoteID  int64  `json:"note_id"`
	Summary string `json:"summary"`
}
