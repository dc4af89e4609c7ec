package review

import (
	"strconv"

	"github.com/az-ai-labs/ulasan/dataset"
)

// Column names produced by ToTable.
const (
	ColUser   = "user"
	ColRating = "rating"
	ColDate   = "date"
	ColText   = "text"
)

// DateLayout is the format of the date column written by ToTable.
const DateLayout = "2006-01-02 15:04:05"

// ToTable converts records to a table with the columns user, rating, date
// and text. A nil date becomes an empty cell.
func ToTable(records []Record) *dataset.Table {
	t := &dataset.Table{
		Header: []string{ColUser, ColRating, ColDate, ColText},
		Rows:   make([][]string, len(records)),
	}
	for i, r := range records {
		date := ""
		if r.Date != nil {
			date = r.Date.Format(DateLayout)
		}
		t.Rows[i] = []string{r.User, strconv.Itoa(r.Rating), date, r.Text}
	}
	return t
}
