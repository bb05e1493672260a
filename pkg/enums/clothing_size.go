package enums

import "fmt"

// ClothingSize is the merch sizing grid ambassadors pick from.
type ClothingSize string

const (
	ClothingSizeXS ClothingSize = "XS"
	ClothingSizeS  ClothingSize = "S"
	ClothingSizeM  ClothingSize = "M"
	ClothingSizeL  ClothingSize = "L"
	ClothingSizeXL ClothingSize = "XL"
)

var validClothingSizes = []ClothingSize{
	ClothingSizeXS,
	ClothingSizeS,
	ClothingSizeM,
	ClothingSizeL,
	ClothingSizeXL,
}

// String implements fmt.Stringer.
func (c ClothingSize) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ClothingSize.
func (c ClothingSize) IsValid() bool {
	for _, candidate := range validClothingSizes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseClothingSize converts raw input into a ClothingSize.
func ParseClothingSize(value string) (ClothingSize, error) {
	for _, candidate := range validClothingSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid clothing size %q", value)
}
