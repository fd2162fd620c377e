package domain

type Button struct {
	Label string
	Data  string
}

type Keyboard struct {
	Title string
	Rows  [][]Button
}
