package moderation

import (
	"aptos-board/errors"
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed censored/*
var censoredFolder embed.FS

// WordList carries the result of the loading process including metadata for logging.
type WordList struct {
	Words     []string
	Languages []string
}

// LoadWords reads the embedded word lists, one language per .txt file.
func LoadWords() (*WordList, error) {
	return LoadWordsFrom(censoredFolder, "censored")
}

// LoadWordsFrom scans dir in fsys, identifying .txt files as language
// dictionaries and parsing their contents into a unique list of words.
func LoadWordsFrom(fsys fs.FS, dir string) (*WordList, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var languages []string
	unique := make(map[string]struct{})
	var words []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		// "fr.txt" -> "fr"
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		// Scanner handles \n and \r\n alike
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if _, ok := unique[line]; ok {
				continue
			}
			unique[line] = struct{}{}
			words = append(words, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(words) == 0 {
		return nil, errors.ErrEmptyWords
	}
	return &WordList{Words: words, Languages: languages}, nil
}
