package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// errNoMatch reports that no saved plan matches an id or prefix.
var errNoMatch = errors.New("no matching plan")

// resolvePlanID resolves a plan identifier which can be:
//   - A full UUID (exact match)
//   - A unique UUID prefix, as shown in "plan list"
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("plan id is required")
	}

	plans, err := app.Plans.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, p := range plans {
		if p.ID == input {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan %q: %w", input, errNoMatch)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan id %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolvePlanArg resolves an optional id argument, falling back to the
// current plan. It returns "" when neither is available.
func resolvePlanArg(ctx context.Context, app *App, args []string) (string, error) {
	if len(args) > 0 {
		return resolvePlanID(ctx, app, args[0])
	}
	cur, err := app.Plans.Current(ctx)
	if err != nil {
		return "", err
	}
	if cur == nil {
		return "", nil
	}
	return cur.ID, nil
}
