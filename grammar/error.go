package grammar

import "github.com/ardnew/incr/parse"

var (
	ErrExprCompile   = parse.NewError("invalid grammar expression")
	ErrExprEvaluate  = parse.NewError("grammar expression failed")
	ErrNotParser     = parse.NewError("expression does not yield a parser")
	ErrInvalidName   = parse.NewError("invalid rule name")
	ErrDuplicateRule = parse.NewError("rule already defined")
	ErrRuleNotFound  = parse.NewError("rule not found")
	ErrNoStart       = parse.NewError("grammar has no start rule")
	ErrGrammarRead   = parse.NewError("failed to read grammar")
	ErrGrammarDecode = parse.NewError("failed to decode grammar")
	ErrGrammarEncode = parse.NewError("failed to encode grammar")
	ErrNotFound      = parse.NewError("grammar file not found")
)
