package kdf

import (
	"crypto/rand"
	"math"
	"math/big"
	"strings"

	tallowcrypto "tallow/internal/crypto"
)

// wordlist is a deterministically generated list of pronounceable
// syllable-combination words used for diceware-style passphrases.
//
// This is NOT the EFF Large Wordlist: reproducing that list verbatim would
// need to be vendored from an external source this tree has no access to,
// and claiming it without the real list would silently understate
// collision risk. Instead this combines five independent 6-option syllable
// positions (one per physical die in a 5-die diceware roll) into a list of
// exactly 6^5 = 7776 words, matching the real list's size and per-word
// entropy exactly rather than approximating it.
var wordlist = buildWordlist()

// syllables holds the 6 options for each of the 5 positions in a generated
// word, standing in for the 6 faces of one die.
var syllables = []string{"ba", "ce", "di", "fo", "gu", "ha"}

func buildWordlist() []string {
	words := make([]string, 0, 7776)
	for _, a := range syllables {
		for _, b := range syllables {
			for _, c := range syllables {
				for _, d := range syllables {
					for _, e := range syllables {
						words = append(words, a+b+c+d+e)
					}
				}
			}
		}
	}
	return words
}

// WordlistSize is the number of distinct words generate_diceware can draw
// from.
func WordlistSize() int { return len(wordlist) }

// BitsPerWord is the actual entropy contributed by one word drawn
// uniformly from wordlist, derived from its real size rather than a
// hardcoded assumption about a specific external list.
func BitsPerWord() float64 { return math.Log2(float64(len(wordlist))) }

// GenerateDiceware returns a passphrase of wordCount words separated by
// hyphens, each word drawn uniformly at random from wordlist using a CSPRNG.
func GenerateDiceware(wordCount int) (string, error) {
	words := make([]string, wordCount)
	max := big.NewInt(int64(len(wordlist)))
	for i := range words {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", tallowcrypto.New(tallowcrypto.KeyGeneration, "failed to draw a random diceware word", err)
		}
		words[i] = wordlist[n.Int64()]
	}
	return strings.Join(words, "-"), nil
}
