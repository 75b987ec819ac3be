package parse

import (
	"log/slog"
	"reflect"
)

func resultTypeName(value any) string {
	if value == nil {
		return "nil"
	}

	return reflect.TypeOf(value).String()
}

func parserAttrs(p *Parser) []slog.Attr {
	return []slog.Attr{
		slog.Uint64("parser_id", p.id),
		slog.String("kind", p.kind.String()),
		slog.String("parser", p.String()),
	}
}
