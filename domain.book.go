package main

// Book represents a book record on the shelf.
type Book struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   int     `json:"year"`
	Genre  string  `json:"genre"`
	Price  float64 `json:"price"`
}
