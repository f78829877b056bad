package characters

import (
	"context"
	"errors"

	"charview/internal/graphql"
)

// ErrMalformedResponse is returned when a successful response lacks the
// characters.results list.
var ErrMalformedResponse = errors.New("malformed response: missing characters.results")

// Fetch issues exactly one query for the field set and returns the result
// list in server order. Status is cleared unless the field set requests it.
func Fetch(ctx context.Context, c *graphql.Client, fields FieldSet) ([]Character, error) {
	resp, _, err := graphql.Do[Envelope](ctx, c, graphql.Request{
		Query:         Query(fields),
		OperationName: OperationName,
	})
	if err != nil {
		return nil, err
	}
	if resp.Data.Characters == nil || resp.Data.Characters.Results == nil {
		return nil, ErrMalformedResponse
	}

	out := resp.Data.Characters.Results
	if !fields.HasStatus() {
		for i := range out {
			out[i].Status = ""
		}
	}
	return out, nil
}
