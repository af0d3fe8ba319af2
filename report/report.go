package report

import (
	"time"

	"github.com/hupe1980/ppjoin"
	"github.com/hupe1980/ppjoin/model"
)

// Version is the report layout version written by this package.
const Version = 1

// Entry is one matched pair of a report.
type Entry struct {
	LeftDataset  int          `json:"leftDataset"`
	LeftIndex    int          `json:"leftIndex"`
	RightDataset int          `json:"rightDataset"`
	RightIndex   int          `json:"rightIndex"`
	Similarity   float64      `json:"similarity"`
	Left         model.Record `json:"left,omitempty"`
	Right        model.Record `json:"right,omitempty"`
}

// Report is the serializable outcome of a join.
type Report struct {
	Version   int            `json:"version"`
	Threshold float64        `json:"threshold"`
	CreatedAt time.Time      `json:"createdAt"`
	Matches   []Entry        `json:"matches"`
	Merged    []model.Record `json:"merged,omitempty"`
}

// Len returns the number of matches in the report.
func (r *Report) Len() int { return len(r.Matches) }

// Build creates a report from a resolution.
func Build(res *ppjoin.Resolution, threshold float64) *Report {
	rep := FromMatches(res.Matches, threshold)
	rep.Merged = res.Merged
	return rep
}

// FromMatches creates a report from a match list.
func FromMatches(matches []model.Match, threshold float64) *Report {
	rep := &Report{
		Version:   Version,
		Threshold: threshold,
		CreatedAt: time.Now().UTC(),
		Matches:   make([]Entry, 0, len(matches)),
	}
	for _, m := range matches {
		rep.Matches = append(rep.Matches, Entry{
			LeftDataset:  m.Left.Dataset,
			LeftIndex:    m.Left.Index,
			RightDataset: m.Right.Dataset,
			RightIndex:   m.Right.Index,
			Similarity:   m.Similarity,
			Left:         m.Left.Record,
			Right:        m.Right.Record,
		})
	}
	return rep
}

// ToMatches converts the report entries back into matches.
func (r *Report) ToMatches() []model.Match {
	out := make([]model.Match, 0, len(r.Matches))
	for _, e := range r.Matches {
		out = append(out, model.Match{
			Left:       model.Ref{Dataset: e.LeftDataset, Index: e.LeftIndex, Record: e.Left},
			Right:      model.Ref{Dataset: e.RightDataset, Index: e.RightIndex, Record: e.Right},
			Similarity: e.Similarity,
		})
	}
	return out
}
