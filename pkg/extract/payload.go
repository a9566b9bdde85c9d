package extract

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kaptinlin/jsonrepair"

	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/graph"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParsePayload decodes the graph object embedded in a model reply.
//
// Models tend to wrap JSON in prose or code fences, so only the text from
// the first '{' to the last '}' is decoded. Syntax slips such as trailing
// commas or single quotes are repaired before giving up. A reply without an
// object, or one that cannot be repaired, yields a MALFORMED_OUTPUT error.
//
// The returned payload is not validated; see [graph.Repair].
func ParsePayload(text string) (graph.Raw, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return graph.Raw{}, mmerrors.New(mmerrors.ErrCodeMalformedOutput, "no JSON object in backend output")
	}
	body := text[start : end+1]

	var raw graph.Raw
	err := json.UnmarshalFromString(body, &raw)
	if err == nil {
		return raw, nil
	}

	repaired, rerr := jsonrepair.JSONRepair(body)
	if rerr == nil {
		raw = graph.Raw{}
		if json.UnmarshalFromString(repaired, &raw) == nil {
			return raw, nil
		}
	}
	return graph.Raw{}, mmerrors.Wrap(mmerrors.ErrCodeMalformedOutput, err, "invalid JSON in backend output")
}
