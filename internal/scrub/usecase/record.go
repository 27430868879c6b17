package usecase

import (
	"context"
	"maps"
	"slices"
	"strconv"
)

// scrubRecord returns a copy of record with every string leaf scrubbed. Keys are
// visited in sorted order so detections come out in a stable order.
func (r *run) scrubRecord(ctx context.Context, record map[string]any) (map[string]any, error) {
	out, err := r.scrubValue(ctx, "", record)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func (r *run) scrubValue(ctx context.Context, path string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		return r.scrubText(ctx, path, v)

	case map[string]any:
		out := make(map[string]any, len(v))
		for _, key := range slices.Sorted(maps.Keys(v)) {
			masked, err := r.scrubValue(ctx, joinKey(path, key), v[key])
			if err != nil {
				return nil, err
			}
			out[key] = masked
		}
		return out, nil

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			masked, err := r.scrubValue(ctx, joinIndex(path, i), item)
			if err != nil {
				return nil, err
			}
			out[i] = masked
		}
		return out, nil

	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			masked, err := r.scrubText(ctx, joinIndex(path, i), item)
			if err != nil {
				return nil, err
			}
			out[i] = masked
		}
		return out, nil

	default:
		return value, nil
	}
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func joinIndex(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
