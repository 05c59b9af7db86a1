package store

import (
	"math"
	"strconv"
	"strings"

	"github.com/verluna/site/internal/domain/content"
)

// wordsPerMinute is the fixed reading-speed constant behind every
// "N min read" label. Changing it changes every label, so it stays put.
const wordsPerMinute = 200

// EstimateReadingTime derives the reading time from the body word
// count. The label rounds minutes up and never goes below one minute.
func EstimateReadingTime(body string) content.ReadingTime {
	words := len(strings.Fields(body))
	minutes := float64(words) / wordsPerMinute

	label := int(math.Ceil(minutes))
	if label < 1 {
		label = 1
	}

	return content.ReadingTime{
		Text:    strconv.Itoa(label) + " min read",
		Minutes: minutes,
		Words:   words,
	}
}
