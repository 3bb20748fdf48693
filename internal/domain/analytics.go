package domain

// Watermark identifies a state of the note corpus. Any insert, history
// writing update or delete produces a different value.
type Watermark struct {
	NoteCount int64
	LastWrite int64
}

// NoteLength is a note id paired with its content length in characters.
type NoteLength struct {
	ID     int64 `json:"id"`
	Length int   `json:"length"`
}

type TopNotes struct {
	Longest  []NoteLength `json:"longest"`
	Shortest []NoteLength `json:"shortest"`
}

type AnalyticsReport struct {
	TotalWordCount      int64    `json:"total_word_count"`
	AverageNoteLength   float64  `json:"average_note_length"`
	MostCommonWords     []string `json:"most_common_words"`
	TopNotes            TopNotes `json:"top_notes"`
	TotalCharacterCount int64    `json:"total_character_count"`
	MedianNoteLength    float64  `json:"median_note_length"`
	CommonBigrams       []string `json:"common_bigrams"`
	CommonTrigrams      []string `json:"common_trigrams"`
}
