package model

// PageData is what a renderer needs for one slug-addressed page: the entry with
// its body and the summaries of its chronological neighbours.
type PageData[E any, S any] struct {
	Item     E  `json:"item"`
	Previous *S `json:"previous"`
	Next     *S `json:"next"`
}
