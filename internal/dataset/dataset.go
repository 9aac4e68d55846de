// Package dataset reads training samples from whitespace separated text files.
//
// File format:
//
//	x1 x2 x3 x4 y
//	12.5 3 18 7.25 0.41
//	...
//
// The first line is a header and is ignored. Every other non-blank line holds
// the input features followed by a single expected output in the last column.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/densenet/internal/nn"
)

// ErrParse is returned when a value in the file is not a number.
var ErrParse = errors.New("dataset: parse error")

// Load reads samples from the file at path.
func Load(path string) ([]nn.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	samples, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Read parses samples from r.
//
// Lines with fewer than two columns are skipped. A column that does not
// parse as a number fails the whole read with ErrParse and the line number.
func Read(r io.Reader) ([]nn.Sample, error) {
	sc := bufio.NewScanner(r)
	var samples []nn.Sample

	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue // header
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}

		values := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: %q: %w", line, i+1, f, ErrParse)
			}
			values[i] = v
		}
		last := len(values) - 1
		samples = append(samples, nn.Sample{
			Inputs:   values[:last:last],
			Expected: values[last:],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return samples, nil
}
