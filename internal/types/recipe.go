package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Recipe is one recipe suggestion as returned to clients
type Recipe struct {
	Name         string       `json:"name"`
	Ingredients  []string     `json:"ingredients"`
	Instructions FlexibleText `json:"instructions"`
	CookingTime  FlexibleText `json:"cookingTime"`
	Difficulty   FlexibleText `json:"difficulty"`
}

// UnmarshalJSON decodes a recipe as a model tends to write it: snake_case
// aliases, ingredient objects, and step lists are all accepted.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name            string          `json:"name"`
		Title           string          `json:"title"`
		Ingredients     IngredientList  `json:"ingredients"`
		Instructions    FlexibleText    `json:"instructions"`
		Steps           FlexibleText    `json:"steps"`
		CookingTime     FlexibleText    `json:"cookingTime"`
		CookingTimeAlt  FlexibleText    `json:"cooking_time"`
		Difficulty      FlexibleText    `json:"difficulty"`
		DifficultyLevel json.RawMessage `json:"difficulty_level"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Name = aux.Name
	if r.Name == "" {
		r.Name = aux.Title
	}
	r.Ingredients = []string(aux.Ingredients)
	r.Instructions = aux.Instructions
	if r.Instructions == "" {
		r.Instructions = aux.Steps
	}
	r.CookingTime = aux.CookingTime
	if r.CookingTime == "" {
		r.CookingTime = aux.CookingTimeAlt
	}
	r.Difficulty = aux.Difficulty
	if r.Difficulty == "" && len(aux.DifficultyLevel) > 0 {
		var level FlexibleText
		if err := level.UnmarshalJSON(aux.DifficultyLevel); err == nil {
			r.Difficulty = level
		}
	}
	return nil
}

// FlexibleText can hold a string, a number, or a list of strings (joined by newlines)
type FlexibleText string

func (t *FlexibleText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	// Try to unmarshal as string first
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*t = FlexibleText(str)
		return nil
	}

	// Then as number
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*t = FlexibleText(strconv.FormatFloat(num, 'f', -1, 64))
		return nil
	}

	// Then as a list of steps
	var list []FlexibleText
	if err := json.Unmarshal(data, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if item != "" {
				parts = append(parts, string(item))
			}
		}
		*t = FlexibleText(strings.Join(parts, "\n"))
		return nil
	}

	return fmt.Errorf("invalid text format")
}

// IngredientList accepts a list of strings, a list of {name|item} objects, or a single string
type IngredientList []string

func (l *IngredientList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = IngredientList{single}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid ingredients format")
	}

	out := make(IngredientList, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			out = append(out, name)
			continue
		}

		var obj struct {
			Name   string       `json:"name"`
			Item   string       `json:"item"`
			Amount FlexibleText `json:"amount"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("invalid ingredient format")
		}
		label := obj.Name
		if label == "" {
			label = obj.Item
		}
		if obj.Amount != "" {
			label = strings.TrimSpace(string(obj.Amount) + " " + label)
		}
		if label != "" {
			out = append(out, label)
		}
	}

	*l = out
	return nil
}
