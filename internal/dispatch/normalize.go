// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/pdiddy/tileboard/pkg/types"
)

// NoContent is the tile content used when a response has nothing to show.
const NoContent = "No content found"

// Normalize turns a raw response body into tile content.
//
// The response must be a JSON object with a truthy answer or a truthy
// top_matches; anything else is ErrEmptyResult. Truthiness follows the
// query services' own client: null, false, 0, "" and absent are falsy,
// while an empty top_matches array is truthy and yields NoContent.
//
// Datasource content is answer, then NoContent. Document content is the
// first match's content, then answer, then NoContent. An answer that is an
// object or array passes the check but is not displayable, so it falls
// through to NoContent.
func Normalize(kind types.BackendKind, body []byte) (string, error) {
	if !json.Valid(body) {
		return "", transportError(errors.New("response body is not JSON"))
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", emptyResultError(errors.New("response is not a JSON object"))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return "", transportError(fmt.Errorf("decoding response: %w", err))
	}

	topMatches := fields["top_matches"]
	if !truthy(fields["answer"]) && !truthy(topMatches) {
		return "", emptyResultError(errors.New("response has neither answer nor top_matches"))
	}
	answer := text(fields["answer"])

	if kind == types.BackendDocument {
		if c := firstMatchContent(topMatches); c != "" {
			return c, nil
		}
	}
	if answer != "" {
		return answer, nil
	}
	return NoContent, nil
}

// firstMatchContent returns top_matches[0].content when top_matches is an
// array whose first element is an object with displayable content.
func firstMatchContent(raw json.RawMessage) string {
	var matches []json.RawMessage
	if err := json.Unmarshal(raw, &matches); err != nil || len(matches) == 0 {
		return ""
	}
	var first map[string]json.RawMessage
	if err := json.Unmarshal(matches[0], &first); err != nil {
		return ""
	}
	return text(first["content"])
}

// text renders a truthy string or number as display text. Falsy values and
// composite values render as "".
func text(raw json.RawMessage) string {
	if !truthy(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		return n.String()
	}
	return ""
}

// truthy reports whether a JSON value is present and not one of null,
// false, 0 or "".
func truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", `""`:
		return false
	}
	if f, err := strconv.ParseFloat(string(v), 64); err == nil {
		return f != 0
	}
	return true
}
