package prompt

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-pagetags/pkg/sorting"
)

var directionChoices = []string{"desc", "asc", "none"}

// AskSort prompts for a sort field list and direction. An empty field list
// leaves the sort unset.
func AskSort(ctx context.Context, driver Driver, current sorting.State) (sorting.State, error) {
	if driver == nil {
		return sorting.State{}, errors.New("prompt: driver is nil")
	}

	fields, err := driver.Input(ctx, InputConfig{
		Message:   "Sort by",
		Default:   current.Sort,
		Help:      "Comma separated field names; prefix a field with - to invert it.",
		Validator: validateFields,
	})
	if err != nil {
		return sorting.State{}, fmt.Errorf("prompt: sort field: %w", err)
	}
	state := sorting.State{Sort: strings.Join(sorting.SplitFields(fields), ",")}
	if state.Sort == "" {
		return state, nil
	}

	index, err := driver.Select(ctx, SelectConfig{
		Message:      "Direction",
		Options:      directionChoices,
		DefaultIndex: directionIndex(current.Direction),
	})
	if err != nil {
		return sorting.State{}, fmt.Errorf("prompt: direction: %w", err)
	}
	if index >= 0 && index < len(directionChoices) {
		state.Direction = sorting.ParseDirection(directionChoices[index])
	}
	return state, nil
}

// Apply writes state into target's query using the given parameter names.
func Apply(target *url.URL, state sorting.State, sortParam, directionParam string) {
	if target == nil {
		return
	}
	query := target.Query()
	query.Del(sortParam)
	query.Del(directionParam)
	if state.Sort != "" {
		query.Set(sortParam, state.Sort)
	}
	if state.Direction != sorting.DirectionNone {
		query.Set(directionParam, string(state.Direction))
	}
	target.RawQuery = query.Encode()
}

func validateFields(value string) error {
	for _, field := range sorting.SplitFields(value) {
		if strings.TrimPrefix(field, "-") == "" {
			return fmt.Errorf("invalid field %q", field)
		}
		if strings.ContainsAny(field, " \t&=#?") {
			return fmt.Errorf("field %q contains reserved characters", field)
		}
	}
	return nil
}

func directionIndex(direction sorting.Direction) int {
	if direction == sorting.Ascending {
		return 1
	}
	return 0
}
