package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"recipebox/internal/service"
)

var (
	cleanWhitespace = regexp.MustCompile(`[ \t]+`)
	sectionHeading  = regexp.MustCompile(`(?i)^(ingredients|instructions|method|directions|steps)\s*:?$`)
)

// readRecipes loads recipe inputs from a CSV file with Title, Ingredients
// and Instructions columns, or from a single recipe card in PDF or text form.
func readRecipes(path string) ([]service.RecipeInput, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".pdf", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		text := string(data)
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			if text, err = extractTextFromPDF(data); err != nil {
				return nil, fmt.Errorf("extract pdf text: %w", err)
			}
		}
		input, err := parseRecipeCard(text)
		if err != nil {
			return nil, err
		}
		return []service.RecipeInput{input}, nil
	default:
		return nil, fmt.Errorf("unsupported source type %q", filepath.Ext(path))
	}
}

func readCSV(path string) ([]service.RecipeInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	columns := make(map[string]int, len(rows[0]))
	for idx, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	if _, ok := columns["title"]; !ok {
		return nil, errors.New("csv is missing a Title column")
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return normalizeText(row[idx])
	}

	inputs := make([]service.RecipeInput, 0, len(rows)-1)
	for _, row := range rows[1:] {
		title := field(row, "title")
		if title == "" {
			continue
		}
		inputs = append(inputs, service.RecipeInput{
			Title:        title,
			Ingredients:  field(row, "ingredients"),
			Instructions: field(row, "instructions"),
		})
	}
	return inputs, nil
}

// parseRecipeCard reads a free-form card: the first line is the title and
// the Ingredients and Instructions headings split the remainder. Text
// without headings becomes the instructions.
func parseRecipeCard(text string) (service.RecipeInput, error) {
	var (
		input   service.RecipeInput
		section = "instructions"
		ingr    []string
		instr   []string
	)

	for _, raw := range strings.Split(text, "\n") {
		line := normalizeText(raw)
		if line == "" {
			continue
		}
		if input.Title == "" {
			input.Title = line
			continue
		}
		if match := sectionHeading.FindStringSubmatch(line); match != nil {
			if strings.EqualFold(match[1], "ingredients") {
				section = "ingredients"
			} else {
				section = "instructions"
			}
			continue
		}
		if section == "ingredients" {
			ingr = append(ingr, line)
		} else {
			instr = append(instr, line)
		}
	}

	if input.Title == "" {
		return service.RecipeInput{}, errors.New("recipe card is empty")
	}
	input.Ingredients = strings.Join(ingr, "\n")
	input.Instructions = strings.Join(instr, "\n")
	return input, nil
}

func normalizeText(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\r", ""))
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return cleanWhitespace.ReplaceAllString(value, " ")
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
