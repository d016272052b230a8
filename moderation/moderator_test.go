package moderation

import (
	"aptos-board/errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

// TestModerator_Scan
// The dictionary uses specific words to avoid partial collisions (e.g., "he" inside "The")
func TestModerator_Scan(t *testing.T) {
	req := require.New(t)
	dictionary := []string{"badger", "snake", "mushroom"}
	mod, err := NewModerator(dictionary)
	req.NoError(err)

	tests := []struct {
		name  string
		input string
		words []string
	}{
		{
			name:  "Simple word",
			input: "The badger is here",
			words: []string{"badger"},
		},
		{
			name:  "Multiple occurrences",
			input: "badger badger badger",
			words: []string{"badger", "badger", "badger"},
		},
		{
			name:  "Leet speak and internal punctuation",
			input: "Look at B.4.d.g.€r !",
			words: []string{"badger"},
		},
		{
			name:  "Uppercase and extreme noise",
			input: "S-N-A-K-E is a B.A.D.G.E.R",
			words: []string{"snake", "badger"},
		},
		{
			name:  "Accents and special characters (UTF-8)",
			input: "Un été avec un badger",
			words: []string{"badger"},
		},
		{
			name:  "Nothing to flag",
			input: "Aptos is amazing",
			words: nil,
		},
		{
			name:  "Empty string",
			input: "",
			words: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.words, mod.Scan(tt.input))
		})
	}
}

func TestModerator_EmptyDictionary(t *testing.T) {
	req := require.New(t)

	_, err := NewModerator(nil)
	req.ErrorIs(err, errors.ErrEmptyWords)

	_, err = NewModerator([]string{"...", " "})
	req.ErrorIs(err, errors.ErrEmptyWords)
}

func TestModerator_DuplicatePatterns(t *testing.T) {
	req := require.New(t)

	// Given two spellings of the same pattern
	mod, err := NewModerator([]string{"rug pull", "rugpull"})
	req.NoError(err)

	// Then a single match is reported
	req.Equal([]string{"rugpull"}, mod.Scan("total rug-pull incoming"))
}

func TestLoadWords_Embedded(t *testing.T) {
	req := require.New(t)

	list, err := LoadWords()
	req.NoError(err)
	req.ElementsMatch([]string{"en", "fr"}, list.Languages)
	req.Contains(list.Words, "seed phrase")
	req.Contains(list.Words, "arnaque")

	mod, err := NewModerator(list.Words)
	req.NoError(err)
	req.Equal([]string{"seedphrase"}, mod.Scan("DM me your SEED-PHRASE for the airdrop"))
}

func TestLoadWordsFrom(t *testing.T) {
	req := require.New(t)

	// Given a folder with two dictionaries sharing a word and a non dictionary file
	fsys := fstest.MapFS{
		"words/en.txt":    {Data: []byte("scam\r\nspam\n\n")},
		"words/de.txt":    {Data: []byte("spam\nbetrug\n")},
		"words/README.md": {Data: []byte("ignored")},
	}

	// When the folder is loaded
	list, err := LoadWordsFrom(fsys, "words")

	// Then every word is kept once and only .txt files count as languages
	req.NoError(err)
	req.Equal([]string{"de", "en"}, list.Languages)
	req.Equal([]string{"spam", "betrug", "scam"}, list.Words)
}

func TestLoadWordsFrom_Empty(t *testing.T) {
	req := require.New(t)
	fsys := fstest.MapFS{"words/en.txt": {Data: []byte("\n  \n")}}

	_, err := LoadWordsFrom(fsys, "words")
	req.ErrorIs(err, errors.ErrEmptyWords)
}
