package utils

import "strings"

// MinWords is the advisory word minimum front-ends enforce before submitting.
const MinWords = 20

// WordBand classifies an essay length for display.
type WordBand int

const (
	BandShort WordBand = iota // under 150 words
	BandIdeal                 // 150 to 400 words
	BandLong                  // over 400 words
)

func (b WordBand) String() string {
	switch b {
	case BandShort:
		return "curta"
	case BandIdeal:
		return "ideal"
	default:
		return "longa"
	}
}

// WordCount counts whitespace separated words in the trimmed text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// WordCountBand maps a word count to its display band.
func WordCountBand(words int) WordBand {
	switch {
	case words < 150:
		return BandShort
	case words <= 400:
		return BandIdeal
	default:
		return BandLong
	}
}

// MeetsMinWords reports whether text reaches the advisory word minimum.
func MeetsMinWords(text string) bool {
	return WordCount(text) >= MinWords
}
