package keys

import (
	"context"
	"sync"

	"github.com/TheusHen/trsa/trsa/logging"
	"github.com/TheusHen/trsa/trsa/numtheory"
	"github.com/TheusHen/trsa/trsa/primes"
)

// PublicExponent is the fixed public exponent, 2^8 + 1.
const PublicExponent int64 = 1<<8 + 1

// PublicKey encrypts. Modulus is the product of two distinct table primes.
type PublicKey struct {
	Modulus  int64 `json:"modulus"`
	Exponent int64 `json:"exponent"`
}

// PrivateKey decrypts. Exponent is the inverse of PublicExponent modulo phi, in [0, phi).
type PrivateKey struct {
	Modulus  int64 `json:"modulus"`
	Exponent int64 `json:"exponent"`
}

// Generator draws key pairs from a prime table.
type Generator struct {
	mu     sync.Mutex
	table  *primes.Table
	rand   primes.Rand
	logger logging.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTable draws primes from t instead of the bundled table.
func WithTable(t *primes.Table) Option {
	return func(g *Generator) { g.table = t }
}

// WithRand replaces the crypto/rand backed selection. Sources that are not safe for
// concurrent use are fine; the generator serialises access.
func WithRand(r primes.Rand) Option {
	return func(g *Generator) { g.rand = r }
}

// WithLogger sets the logger used for generation diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator returns a generator over primes.Default() using primes.CryptoRand.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.table == nil {
		g.table = primes.Default()
	}
	if g.rand == nil {
		g.rand = primes.CryptoRand
	}
	if g.logger == nil {
		g.logger = logging.New(nil)
	}
	return g
}

// GenerateKeyPair draws p and q until they are distinct, non-zero and (p-1)(q-1) is coprime
// with PublicExponent, then derives the private exponent.
//
// The draw loop has no upper bound. A table with fewer than two usable primes never
// terminates.
func (g *Generator) GenerateKeyPair() (PublicKey, PrivateKey) {
	const e = PublicExponent

	var (
		n, phi int64
		draws  int
	)
	for {
		p, q := g.draw(), g.draw()
		draws++
		if p != 0 && q != 0 && p != q {
			n, phi = p*q, (p-1)*(q-1)
			if numtheory.GCD(phi, e) == 1 {
				break
			}
		}
	}

	d := numtheory.ExtendedEuclid(phi, e)
	for d < 0 {
		d += phi
	}

	pub := PublicKey{Modulus: n, Exponent: e}
	g.logger.Debug(context.Background(), "key pair generated",
		"key_id", pub.ID().String(),
		"modulus", n,
		"draws", draws,
		logging.Redacted("private_exponent"),
	)
	return pub, PrivateKey{Modulus: n, Exponent: d}
}

// draw returns one prime. An empty table yields 0, which the caller rejects.
func (g *Generator) draw() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, err := g.table.Choose(g.rand)
	if err != nil {
		return 0
	}
	return v
}

var defaultGenerator = sync.OnceValue(func() *Generator { return NewGenerator() })

// GenerateKeyPair generates a key pair from the bundled prime table.
func GenerateKeyPair() (PublicKey, PrivateKey) {
	return defaultGenerator().GenerateKeyPair()
}
