// Command generate-golden writes the reference triple sequence used by the
// generator's golden test. It enumerates by brute force over (m, n) pairs,
// independently of the tree walk it checks.
package main

import (
	"cmp"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// goldenTriple is one entry of the golden file, hypotenuse first.
type goldenTriple struct {
	C int64 `json:"c"`
	B int64 `json:"b"`
	A int64 `json:"a"`
}

type goldenFile struct {
	Bound   int64          `json:"bound"`
	Triples []goldenTriple `json:"triples"`
}

func main() {
	outputDir := flag.String("out", "internal/triples/testdata", "Output directory for the golden file")
	bound := flag.Int64("bound", 300, "Largest hypotenuse to include")
	flag.Parse()

	if *bound < 5 {
		fmt.Fprintf(os.Stderr, "Error: bound must be at least 5, got %d\n", *bound)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "triples_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	data := goldenFile{Bound: *bound, Triples: bruteForce(*bound)}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d triples up to %d to %s\n", len(data.Triples), *bound, filename)
}

// bruteForce lists every primitive triple with C <= bound via Euclid's
// formula: m > n > 0, coprime, of opposite parity. The result is ordered by
// C, then B.
func bruteForce(bound int64) []goldenTriple {
	var out []goldenTriple
	for m := int64(2); m*m+1 <= bound; m++ {
		for n := int64(1); n < m; n++ {
			if (m-n)%2 == 0 || gcd(m, n) != 1 {
				continue
			}
			c := m*m + n*n
			if c > bound {
				break
			}
			a, b := m*m-n*n, 2*m*n
			if a > b {
				a, b = b, a
			}
			out = append(out, goldenTriple{C: c, B: b, A: a})
		}
	}
	slices.SortFunc(out, func(x, y goldenTriple) int {
		return cmp.Or(cmp.Compare(x.C, y.C), cmp.Compare(x.B, y.B))
	})
	return out
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
