package wiring

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/assurrussa/dilab/metier"
)

// FormatResult renders v the way the result line expects it: integral values
// keep one decimal (529.0).
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func printResult(w io.Writer, calc metier.Calculator) error {
	v, err := calc.Compute()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Result: %s\n", FormatResult(v))
	return err
}
