// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"regexp"
	"testing"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		date types.PubDate
		want string
	}{
		{"full numeric date", types.PubDate{Year: "2021", Month: "7", Day: "3"}, "2021-07-03"},
		{"month name January", types.PubDate{Year: "2020", Month: "January", Day: "15"}, "2020-01-15"},
		{"month name December", types.PubDate{Year: "2019", Month: "December"}, "2019-12-01"},
		{"missing month and day", types.PubDate{Year: "2018"}, "2018-01-01"},
		{"missing day", types.PubDate{Year: "2022", Month: "11"}, "2022-11-01"},
		{"unrecognized month name falls back to January", types.PubDate{Year: "2020", Month: "Frimaire", Day: "2"}, "2020-01-02"},
		{"abbreviated month name is not a full name", types.PubDate{Year: "2020", Month: "Dec"}, "2020-01-01"},
		{"medline season fallback", types.PubDate{MedlineDate: "Summer 2020"}, "2020-01-01"},
		{"medline range keeps first year", types.PubDate{MedlineDate: "1998 Dec-1999 Jan"}, "1998-01-01"},
		{"medline without a year", types.PubDate{MedlineDate: "Spring"}, DateUnknown},
		{"empty date", types.PubDate{}, DateUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.date); got != tt.want {
				t.Errorf("NormalizeDate(%+v) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestNormalizeDateShape(t *testing.T) {
	// Any date with a year yields a well-formed YYYY-MM-DD, never the sentinel.
	dates := []types.PubDate{
		{Year: "2020"},
		{Year: "2020", Month: "Fakeuary"},
		{Year: "2020", Month: "3"},
		{Year: "2020", Month: "March", Day: "9"},
	}
	for _, d := range dates {
		got := NormalizeDate(d)
		if got == DateUnknown {
			t.Errorf("NormalizeDate(%+v) = %q, want a formatted date", d, got)
			continue
		}
		if !dateShape.MatchString(got) {
			t.Errorf("NormalizeDate(%+v) = %q, want match for %s", d, got, dateShape)
		}
	}
}
