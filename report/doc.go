// Package report persists the outcome of a join.
//
// A Report is encoded with a codec.Codec, optionally compressed with LZ4 or
// zstd and stored as a single blob in a blobstore.BlobStore. Every blob starts
// with a small header naming its codec and compression, so a Reader needs no
// configuration to load what a Writer stored:
//
//	store := blobstore.NewLocalStore("/var/lib/dedup")
//	w := report.NewWriter(store, report.WithCompression(report.CompressionZSTD))
//	if err := w.Write(ctx, "customers.ppjr", report.Build(res, 0.8)); err != nil {
//	    return err
//	}
//
//	rep, err := report.NewReader(store).Read(ctx, "customers.ppjr")
package report
