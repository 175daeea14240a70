// Package parallel splits a frame into horizontal bands of scanlines that
// can be rendered independently.
//
// A band is a half-open range of rows. Bands never share a row, so workers
// writing different bands of the same surface do not need to synchronize.
package parallel

// BandsPerWorker is the number of bands created per worker. Rows near the
// middle of a globe are longer than rows near its top and bottom; several
// bands per worker let fast workers pick up the slack.
const BandsPerWorker = 4

// Band is the row range [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Empty reports whether the band contains no rows.
func (b Band) Empty() bool { return b.Y1 <= b.Y0 }

// Rows returns the number of rows of b visited with the given step.
func (b Band) Rows(step int) int {
	if b.Empty() || step < 1 {
		return 0
	}
	return (b.Y1 - b.Y0 + step - 1) / step
}

// Split divides [y0, y1) into at most k bands of nearly equal row counts.
// Rows are visited every step rows starting at y0; every band starts on
// such a row, so a row and the step-1 rows after it always stay together.
//
// Split always returns at least one band, which may be empty.
func Split(y0, y1, step, k int) []Band {
	if step < 1 {
		step = 1
	}
	rows := Band{y0, y1}.Rows(step)
	if rows == 0 {
		return []Band{{y0, y0}}
	}
	k = max(min(k, rows), 1)

	bands := make([]Band, 0, k)
	for i := range k {
		a := y0 + rows*i/k*step
		b := y0 + rows*(i+1)/k*step
		bands = append(bands, Band{a, min(b, y1)})
	}
	return bands
}
