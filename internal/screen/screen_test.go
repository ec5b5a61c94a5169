// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"fmt"
	"testing"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// syntheticBatch builds a mix of qualifying, academic-only, and malformed
// records. Exactly the articles with PMIDs "q0"..."q4" qualify.
func syntheticBatch() []types.RawArticle {
	var batch []types.RawArticle

	for i := 0; i < 5; i++ {
		a := qualifyingArticle(fmt.Sprintf("q%d", i))
		batch = append(batch, a)
	}
	for i := 0; i < 4; i++ {
		batch = append(batch, types.RawArticle{
			PMID:    fmt.Sprintf("a%d", i),
			Title:   "academic-only",
			PubDate: types.PubDate{Year: "2020"},
			Authors: []types.Author{
				{ForeName: "Only", LastName: "Academic", Affiliations: []string{"Some University"}},
			},
		})
	}
	// Malformed: no title, no date, no authors.
	batch = append(batch,
		types.RawArticle{PMID: "m0", PubDate: types.PubDate{Year: "2020"}},
		types.RawArticle{PMID: "m1", Title: "dateless", PubDate: types.PubDate{}},
		types.RawArticle{PMID: "m2", Title: "authorless", PubDate: types.PubDate{Year: "2020"}},
	)
	return batch
}

func TestScreenCollectsQualifyingSet(t *testing.T) {
	for _, workers := range []int{1, 4, 32} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got := Screen(syntheticBatch(), types.ScreenConfig{Workers: workers}, discardLogger())

			if len(got) != 5 {
				t.Fatalf("len(screened) = %d, want 5", len(got))
			}
			// Completion order is not deterministic; compare as a set.
			seen := make(map[string]bool)
			for _, a := range got {
				seen[a.PMID] = true
			}
			for i := 0; i < 5; i++ {
				pmid := fmt.Sprintf("q%d", i)
				if !seen[pmid] {
					t.Errorf("missing qualifying article %s in %v", pmid, seen)
				}
			}
		})
	}
}

func TestScreenEmptyInput(t *testing.T) {
	if got := Screen(nil, types.ScreenConfig{}, discardLogger()); got != nil {
		t.Errorf("Screen(nil) = %v, want nil", got)
	}
}

func TestScreenDefaultsWorkerCount(t *testing.T) {
	// A zero or negative worker count must not deadlock or drop tasks.
	got := Screen(syntheticBatch(), types.ScreenConfig{Workers: -1}, discardLogger())
	if len(got) != 5 {
		t.Errorf("len(screened) = %d, want 5", len(got))
	}
}
