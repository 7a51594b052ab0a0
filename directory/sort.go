package directory

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/phonebook/core"
)

// Algorithm names an in-place sorting algorithm for SortByName.
type Algorithm int

const (
	// BubbleSort makes n-1 passes of adjacent compare-and-swap.
	BubbleSort Algorithm = iota + 1
	// SelectionSort swaps the minimum of the unsorted suffix into place.
	SelectionSort
)

func (a Algorithm) String() string {
	switch a {
	case BubbleSort:
		return "bubble"
	case SelectionSort:
		return "selection"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps "bubble" or "selection" to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "bubble":
		return BubbleSort, nil
	case "selection":
		return SelectionSort, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

func (a Algorithm) sorter() (func([]*core.Contact), error) {
	switch a {
	case BubbleSort:
		return bubbleSort, nil
	case SelectionSort:
		return selectionSort, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, a)
	}
}

func bubbleSort(s []*core.Contact) {
	n := len(s)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if compareNames(s[j].Name, s[j+1].Name) > 0 {
				s[j], s[j+1] = s[j+1], s[j]
			}
		}
	}
}

func selectionSort(s []*core.Contact) {
	n := len(s)
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if compareNames(s[j].Name, s[minIdx].Name) < 0 {
				minIdx = j
			}
		}
		s[i], s[minIdx] = s[minIdx], s[i]
	}
}

// compareNames orders a and b rune by rune, ignoring case.
func compareNames(a, b string) int {
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if ra != rb {
			fa, fb := foldRune(ra), foldRune(rb)
			if fa != fb {
				if fa < fb {
					return -1
				}
				return 1
			}
		}
		a, b = a[na:], b[nb:]
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func foldRune(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}
