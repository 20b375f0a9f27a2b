package crypto

import (
	"errors"
	"fmt"
	"strings"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	specialChars   = "!@#$%^&*()_-+=<>?"

	// ambiguousChars are dropped from every alphabet in easy-to-read mode.
	ambiguousChars = "0Oo1lI"
)

var (
	ErrInvalidLength = errors.New("password length must be positive")
	ErrUnknownClass  = errors.New("unknown character class")
)

// CharacterClass identifies one of the fixed alphabets a password may draw from.
type CharacterClass uint8

const (
	Uppercase CharacterClass = 1 << iota
	Lowercase
	Numbers
	Special
)

// canonicalClasses fixes the order alphabets are concatenated in.
var canonicalClasses = [...]CharacterClass{Uppercase, Lowercase, Numbers, Special}

// String returns the wire name of the class.
func (c CharacterClass) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Numbers:
		return "numbers"
	case Special:
		return "special"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Alphabet returns the characters of the class, without ambiguous ones when easyToRead is set.
func (c CharacterClass) Alphabet(easyToRead bool) string {
	var chars string
	switch c {
	case Uppercase:
		chars = uppercaseChars
	case Lowercase:
		chars = lowercaseChars
	case Numbers:
		chars = numberChars
	case Special:
		chars = specialChars
	}
	if !easyToRead {
		return chars
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(ambiguousChars, r) {
			return -1
		}
		return r
	}, chars)
}

// ParseClass maps a wire name such as "numbers" to its CharacterClass.
func ParseClass(name string) (CharacterClass, error) {
	for _, c := range canonicalClasses {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
}

// ClassSet is a set of enabled character classes.
type ClassSet uint8

// AllClasses enables every character class.
const AllClasses = ClassSet(Uppercase | Lowercase | Numbers | Special)

// DefaultClasses is substituted when a caller enables nothing.
const DefaultClasses = ClassSet(Lowercase | Numbers)

// NewClassSet builds a set from the given classes.
func NewClassSet(classes ...CharacterClass) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s = s.With(c)
	}
	return s
}

// With returns a copy of the set with c enabled.
func (s ClassSet) With(c CharacterClass) ClassSet { return s | ClassSet(c) }

// Has reports whether c is enabled.
func (s ClassSet) Has(c CharacterClass) bool { return s&ClassSet(c) != 0 }

// Empty reports whether no class is enabled.
func (s ClassSet) Empty() bool { return s&AllClasses == 0 }

// Classes lists the enabled classes in canonical order.
func (s ClassSet) Classes() []CharacterClass {
	var out []CharacterClass
	for _, c := range canonicalClasses {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Alphabet returns the union alphabet of the set in canonical order.
func (s ClassSet) Alphabet(easyToRead bool) string {
	var b strings.Builder
	for _, c := range s.Classes() {
		b.WriteString(c.Alphabet(easyToRead))
	}
	return b.String()
}

// Generator produces random passwords from a RandomSource.
type Generator struct {
	rnd RandomSource
}

// NewGenerator creates a Generator. A nil source falls back to SecureSource.
func NewGenerator(src RandomSource) *Generator {
	if src == nil {
		src = SecureSource{}
	}
	return &Generator{rnd: src}
}

// Generate returns a password of exactly length characters drawn from the
// union alphabet of classes. An empty set falls back to DefaultClasses.
//
// Every enabled class is forced in by overwriting one random position with a
// random character of that class. Positions are picked independently, so a
// later class may overwrite an earlier one: coverage is approximate.
func (g *Generator) Generate(length int, classes ClassSet, easyToRead bool) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}
	if classes.Empty() {
		classes = DefaultClasses
	}

	pool := classes.Alphabet(easyToRead)

	result := make([]byte, length)
	for i := range result {
		ch, err := g.pick(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	for _, c := range classes.Classes() {
		pos, err := g.rnd.IntN(length)
		if err != nil {
			return "", err
		}
		ch, err := g.pick(c.Alphabet(easyToRead))
		if err != nil {
			return "", err
		}
		result[pos] = ch
	}

	return string(result), nil
}

// pick returns a uniformly random byte of charset.
func (g *Generator) pick(charset string) (byte, error) {
	n, err := g.rnd.IntN(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}
