package templates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
)

// tomlFile is the layout of a TOML prompt template file
type tomlFile struct {
	Category []struct {
		Name    string   `toml:"name"`
		Prompts []string `toml:"prompts"`
	} `toml:"category"`
}

// ParseTemplateFile decodes prompt categories, picking the format from the file extension
func ParseTemplateFile(name, content string) ([]Category, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		return parseCSV(content)
	case ".toml":
		return parseTOML(content)
	default:
		return nil, fmt.Errorf("unsupported template file format: %s (expected .csv or .toml)", name)
	}
}

// parseCSV reads "category,prompt" rows; categories keep the order they first appear in
func parseCSV(content string) ([]Category, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = 2
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv template is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if !strings.EqualFold(strings.TrimSpace(header[0]), "category") || !strings.EqualFold(strings.TrimSpace(header[1]), "prompt") {
		return nil, fmt.Errorf("csv header must be 'category,prompt', got: %s", strings.Join(header, ","))
	}

	var categories []Category
	index := map[string]int{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		name, prompt := strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		if name == "" || prompt == "" {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("csv line %d: category and prompt must not be empty", line)
		}

		i, ok := index[name]
		if !ok {
			i = len(categories)
			index[name] = i
			categories = append(categories, Category{Name: name})
		}
		categories[i].Prompts = append(categories[i].Prompts, prompt)
	}

	return categories, nil
}

func parseTOML(content string) ([]Category, error) {
	var file tomlFile
	if _, err := toml.Decode(content, &file); err != nil {
		return nil, fmt.Errorf("failed to decode toml template: %w", err)
	}

	categories := make([]Category, 0, len(file.Category))
	for _, c := range file.Category {
		categories = append(categories, Category{Name: strings.TrimSpace(c.Name), Prompts: c.Prompts})
	}
	return categories, nil
}
