package reservation

import "strconv"

// SeatLabels generates the deterministic labels for a rows×cols grid:
// row letter followed by 1-based column number, "A1".."E8" for the default
// 5×8 layout.  Rows beyond Z continue alphabetically as AA, AB, ...
func SeatLabels(rows, cols int) []string {
	labels := make([]string, 0, rows*cols)
	for r := 0; r < rows; r++ {
		row := rowLabel(r)
		for c := 1; c <= cols; c++ {
			labels = append(labels, row+strconv.Itoa(c))
		}
	}
	return labels
}

// rowLabel converts a zero-based row index to an alphabetical label like
// A, B, ..., Z, AA, AB.
func rowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []byte
	for {
		res = append(res, byte('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}
