package blackbody

import "gonum.org/v1/gonum/stat"

// epoch is one retained time bin: the half-open interval [start, end),
// the indices of its member points in the sorted series, and the
// arithmetic mean of their times.
type epoch struct {
	start, end float64
	meanTime   float64
	indices    []int
}

// binEpochs partitions sorted times into fixed-width bins anchored at the
// first time. Edges run t_min, t_min+w, ... while they stay below
// t_max+w, and each bin is left-closed/right-open. Only bins holding at
// least minCount points are returned, in ascending time order. The
// second return value is the total number of bins considered.
func binEpochs(times []float64, widthDays float64, minCount int) ([]epoch, int) {
	if len(times) == 0 {
		return nil, 0
	}

	tMin := times[0]
	tMax := times[len(times)-1]

	edges := []float64{tMin}
	for k := 1; tMin+float64(k)*widthDays < tMax+widthDays; k++ {
		edges = append(edges, tMin+float64(k)*widthDays)
	}

	total := len(edges) - 1
	epochs := make([]epoch, 0, total)

	lo := 0
	for i := 0; i < total; i++ {
		start, end := edges[i], edges[i+1]

		// times is sorted, so each bin consumes a contiguous run.
		for lo < len(times) && times[lo] < start {
			lo++
		}

		hi := lo
		for hi < len(times) && times[hi] < end {
			hi++
		}

		if hi-lo < minCount {
			lo = hi

			continue
		}

		indices := make([]int, 0, hi-lo)
		for j := lo; j < hi; j++ {
			indices = append(indices, j)
		}

		epochs = append(epochs, epoch{
			start:    start,
			end:      end,
			meanTime: stat.Mean(times[lo:hi], nil),
			indices:  indices,
		})

		lo = hi
	}

	return epochs, total
}
