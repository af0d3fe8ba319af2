// Package ppjoin finds near-duplicate records with an exact set-similarity join.
//
// Each record is treated as the set of its field values. Two records match
// when the Jaccard similarity of their sets reaches a threshold t in [0, 1).
// The join is exact: it returns every qualifying pair once, with the exact
// similarity, and never a pair below the threshold. Prefix, size and
// positional filters keep it from comparing all pairs.
//
// # Quick Start
//
//	records := []model.Record{
//	    {"john", "smith", "nyc", "1980"},
//	    {"jon", "smith", "nyc", "1980"},
//	    {"alice", "brown", "la", "1990"},
//	}
//	matches, _ := ppjoin.FindDuplicates(records, 0.5)
//	for _, m := range matches {
//	    fmt.Println(m.Left.Index, m.Right.Index, m.Similarity)
//	}
//
// # Record Linkage
//
// FindDuplicatesAcross joins several datasets and keeps only pairs whose
// records come from different datasets:
//
//	matches, _ := ppjoin.FindDuplicatesAcross([][]model.Record{crm, billing}, 0.25)
//
// MergeDuplicatesAcross and Resolve additionally fold every matched pair into
// one consolidated record (see MergeDuplicates).
//
// # Configuration
//
//	j := ppjoin.New(
//	    ppjoin.WithNormalizer(token.LowercaseText),
//	    ppjoin.WithExcludeColumns(0),          // e.g. a primary key
//	    ppjoin.WithConcurrency(runtime.NumCPU()),
//	    ppjoin.WithLogger(ppjoin.NewJSONLogger(slog.LevelInfo)),
//	)
//	matches, _ := j.FindDuplicates(ctx, records, 0.8)
//	fmt.Println(j.LastStats().Candidates)
//
// Results are deterministic: matches are ordered by (left dataset, left index,
// right dataset, right index), and Left always precedes Right in that order.
package ppjoin
