// Package stats summarizes a JSON-lines dataset: record totals, top-level
// key frequencies, value kind distribution, undecodable lines, and a
// random sample of record previews.
package stats

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sort"

	"github.com/vvka-141/jlb/internal/dataset"
	"github.com/vvka-141/jlb/internal/render"
	"github.com/vvka-141/jlb/pkg/jlb"
)

// KeyCount is a top-level object key and the number of records carrying it.
type KeyCount struct {
	Key   string
	Count int
}

// Sample is one randomly chosen record preview.
type Sample struct {
	Index   int
	Line    int
	Preview string
}

// Report is the result of analyzing a dataset.
type Report struct {
	Dataset string

	// Records is the total number of indexed records, decodable or not.
	Records int

	// MalformedLines holds the physical line numbers of records that
	// failed to decode.
	MalformedLines []int

	// Kinds maps a JSON value kind (object, array, string, number,
	// bool, null) to the number of records whose top-level value has
	// that kind.
	Kinds map[string]int

	// Keys lists top-level object keys by descending frequency.
	Keys []KeyCount

	// Samples previews randomly chosen decodable records.
	Samples []Sample
}

// Collect analyzes every record of ds.
//
// Undecodable lines are counted rather than treated as failures; a stats
// run should describe a dirty dataset, not refuse it.
func Collect(ds *dataset.Dataset, config jlb.StatsConfig) (*Report, error) {
	report := &Report{
		Dataset: ds.Path(),
		Records: ds.Count(),
		Kinds:   make(map[string]int),
	}

	keyCounts := make(map[string]int)
	var decodable []int

	for index := 0; index < ds.Count(); index++ {
		record, err := ds.Get(index)
		if err != nil {
			report.MalformedLines = append(report.MalformedLines, ds.Line(index))
			continue
		}
		decodable = append(decodable, index)

		report.Kinds[kindOf(record)]++
		if obj, ok := record.(map[string]any); ok {
			for key := range obj {
				keyCounts[key]++
			}
		}
	}

	for key, count := range keyCounts {
		report.Keys = append(report.Keys, KeyCount{Key: key, Count: count})
	}
	sort.Slice(report.Keys, func(i, j int) bool {
		if report.Keys[i].Count != report.Keys[j].Count {
			return report.Keys[i].Count > report.Keys[j].Count
		}
		return report.Keys[i].Key < report.Keys[j].Key
	})

	sampleSize := config.SampleSize
	if sampleSize == 0 {
		sampleSize = jlb.DefaultStatsSampleSize
	}
	report.Samples = sampleRecords(ds, decodable, sampleSize, config.Seed)

	return report, nil
}

// sampleRecords picks up to size decodable records without replacement.
func sampleRecords(ds *dataset.Dataset, decodable []int, size int, seed uint64) []Sample {
	if len(decodable) == 0 || size <= 0 {
		return nil
	}
	if size > len(decodable) {
		size = len(decodable)
	}

	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	indices := make([]int, len(decodable))
	copy(indices, decodable)
	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	indices = indices[:size]
	sort.Ints(indices)

	samples := make([]Sample, 0, size)
	for _, index := range indices {
		record, err := ds.Get(index)
		if err != nil {
			continue
		}
		samples = append(samples, Sample{
			Index:   index,
			Line:    ds.Line(index),
			Preview: render.Preview(record, jlb.MaxRecordPreviewLength),
		})
	}
	return samples
}

func kindOf(record jlb.Record) string {
	switch record.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}

// Write renders the report as plain text.
func (r *Report) Write(w io.Writer) {
	fmt.Fprintf(w, "Dataset: %s\n", r.Dataset)
	fmt.Fprintf(w, "Records: %d\n", r.Records)
	fmt.Fprintf(w, "Malformed: %d\n", len(r.MalformedLines))
	for _, line := range r.MalformedLines {
		fmt.Fprintf(w, "  line %d is not valid JSON\n", line)
	}

	if len(r.Kinds) > 0 {
		fmt.Fprintln(w, "\nValue kinds:")
		kinds := make([]string, 0, len(r.Kinds))
		for kind := range r.Kinds {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Fprintf(w, "  %-8s %d\n", kind, r.Kinds[kind])
		}
	}

	if len(r.Keys) > 0 {
		fmt.Fprintln(w, "\nTop-level keys:")
		for _, kc := range r.Keys {
			fmt.Fprintf(w, "  %-24s %d\n", kc.Key, kc.Count)
		}
	}

	if len(r.Samples) > 0 {
		fmt.Fprintln(w, "\nSample records:")
		for _, s := range r.Samples {
			fmt.Fprintf(w, "  [%d] (line %d) %s\n", s.Index, s.Line, s.Preview)
		}
	}
}
