package domain

type Product struct {
	ID       string
	Title    string
	Price    Money
	ImageRef string
}

type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	Size2XL Size = "2XL"
)

// Sizes lists every size in display order.
var Sizes = []Size{SizeS, SizeM, SizeL, SizeXL, Size2XL}

func (s Size) Valid() bool {
	for _, size := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

type Color struct {
	ID   string
	Name string
	Hex  string
	Text string
}
