package primes

import (
	"bufio"
	"bytes"
	"crypto/rand"
	_ "embed"
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"
	"sync"
)

var ErrEmptyTable = errors.New("primes: table is empty")

//go:embed primes.txt
var bundled []byte

// Table is an ordered, immutable sequence of primes.
type Table struct {
	values []int64
}

// Default returns the bundled prime table. It is loaded lazily and shared by all callers.
var Default = sync.OnceValue(func() *Table {
	t, err := Parse(bytes.NewReader(bundled))
	if err != nil {
		panic("primes: bundled table unreadable: " + err.Error())
	}
	return t
})

// Parse reads one decimal integer per line. Lines that do not parse as an integer
// (blank lines, comments) are skipped.
func Parse(r io.Reader) (*Table, error) {
	var values []int64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		v, err := strconv.ParseInt(strings.TrimSpace(sc.Text()), 10, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &Table{values: values}, nil
}

// NewTable builds a table from the given values. The slice is copied.
func NewTable(values []int64) *Table {
	return &Table{values: append([]int64(nil), values...)}
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.values) }

// At returns the i-th entry.
func (t *Table) At(i int) int64 { return t.values[i] }

// Values returns a copy of the entries.
func (t *Table) Values() []int64 {
	return append([]int64(nil), t.values...)
}

// Contains reports whether v is in the table.
func (t *Table) Contains(v int64) bool {
	for _, x := range t.values {
		if x == v {
			return true
		}
	}
	return false
}

// Rand is a uniform source of indexes in [0, n).
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Choose draws one entry uniformly at random.
func (t *Table) Choose(r Rand) (int64, error) {
	if len(t.values) == 0 {
		return 0, ErrEmptyTable
	}
	return t.values[r.IntN(len(t.values))], nil
}

type cryptoRand struct{}

// CryptoRand draws indexes from crypto/rand. It is safe for concurrent use.
var CryptoRand Rand = cryptoRand{}

func (cryptoRand) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("primes: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}
