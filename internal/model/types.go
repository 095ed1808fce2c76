package model

// Result is JSON-serialisable as-is.
type Result struct {
	Original    string       `json:"original"`              // input text (or words joined)
	Words       []string     `json:"words"`                 // words after splitting
	Tagged      []TaggedWord `json:"tagged,omitempty"`      // nil for strategies that don't tag
	Reordered   string       `json:"reordered,omitempty"`   // bucket order, before infill
	Predicted   string       `json:"predicted,omitempty"`   // n-gram infill output
	Predictions []Prediction `json:"predictions,omitempty"` // one per adjacent pair
	Sentence    string       `json:"sentence"`              // final output of the strategy
	Strategy    string       `json:"strategy"`
}

// TaggedWord is a word paired with its part-of-speech tag.
type TaggedWord struct {
	Text     string `json:"text"`     // original casing
	Tag      string `json:"tag"`      // Penn Treebank tag
	Category string `json:"category"` // pronoun | noun | adjective | verb | other
	Manual   bool   `json:"manual"`   // tag came from the correction table
}

// Prediction is the infill word chosen for one pair of anchors.
type Prediction struct {
	Left   string `json:"left"`
	Right  string `json:"right"`
	Word   string `json:"word"`
	Source string `json:"source"` // trigram | bigram | default
	Count  int    `json:"count"`  // frequency of the winning n-gram, 0 for default
}
