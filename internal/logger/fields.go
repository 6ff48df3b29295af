package logger

import "context"

type fieldsKey struct{}

type field struct {
	key   string
	value interface{}
}

// WithFields returns a context carrying the given key/value pairs in addition
// to any already present. An odd trailing key is dropped.
func WithFields(ctx context.Context, kv ...interface{}) context.Context {
	prev := fieldsFrom(ctx)
	fields := make([]field, 0, len(prev)+len(kv)/2)
	fields = append(fields, prev...)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, field{key: key, value: kv[i+1]})
	}
	return context.WithValue(ctx, fieldsKey{}, fields)
}

func fieldsFrom(ctx context.Context) []field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).([]field)
	return fields
}
