// Package medal implements the fixed medal catalog: twelve finishing positions,
// 1 is Gold, 2 is Silver and 3 through 12 are Bronze.
package medal

import (
	"errors"
	"fmt"
)

const (
	Gold   = "Gold"
	Silver = "Silver"
	Bronze = "Bronze"

	MinPosition = 1
	MaxPosition = 12
)

var (
	ErrInvalidPosition = errors.New("medal position must be between 1 and 12")
	ErrInvalidName     = errors.New("medal name must be Gold, Silver or Bronze")
)

type Medal struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
}

func ValidatePosition(position int) bool {
	return position >= MinPosition && position <= MaxPosition
}

// ValidateName is an exact, case-sensitive match against the three medal names.
func ValidateName(name string) bool {
	switch name {
	case Gold, Silver, Bronze:
		return true
	default:
		return false
	}
}

func NameForPosition(position int) (string, error) {
	switch {
	case !ValidatePosition(position):
		return "", ErrInvalidPosition
	case position == 1:
		return Gold, nil
	case position == 2:
		return Silver, nil
	default:
		return Bronze, nil
	}
}

// AllMedalsByPosition returns the complete catalog in ascending position order.
func AllMedalsByPosition() []Medal {
	medals := make([]Medal, 0, MaxPosition)
	for position := MinPosition; position <= MaxPosition; position++ {
		name, _ := NameForPosition(position)
		medals = append(medals, Medal{Position: position, Name: name})
	}
	return medals
}

func PositionsForName(name string) ([]int, error) {
	switch name {
	case Gold:
		return []int{1}, nil
	case Silver:
		return []int{2}, nil
	case Bronze:
		positions := make([]int, 0, MaxPosition-2)
		for position := 3; position <= MaxPosition; position++ {
			positions = append(positions, position)
		}
		return positions, nil
	default:
		return nil, ErrInvalidName
	}
}

// FormatDisplay renders a position as "1st - Gold", "11th - Bronze" and so on.
func FormatDisplay(position int) (string, error) {
	name, err := NameForPosition(position)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d%s - %s", position, ordinalSuffix(position), name), nil
}

func ordinalSuffix(n int) string {
	// 11, 12 and 13 take "th" whatever the last digit says.
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}

	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
