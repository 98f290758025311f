package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// DecodeFile constructs a program from the JSON AST emitted by the rinha
// parser.
func DecodeFile(data []byte) (*File, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("decode file json: %w", err)
	}
	exprRaw, ok := raw["expression"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode file: missing expression")
	}
	expr, err := decodeNode(exprRaw)
	if err != nil {
		return nil, err
	}
	name, _ := raw["name"].(string)
	file := NewFile(name, expr)
	file.Location = decodeLocation(raw["location"])
	return file, nil
}

// DecodeTerm decodes a single JSON term (no surrounding file object).
func DecodeTerm(data []byte) (Term, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("decode term json: %w", err)
	}
	return decodeNode(raw)
}

func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected object")
	}
	return raw, nil
}

func decodeNode(node map[string]any) (Term, error) {
	kind, _ := node["kind"].(string)
	loc := decodeLocation(node["location"])
	switch NodeType(kind) {
	case NodeInt:
		val, err := decodeInt(node["value"])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", loc, err)
		}
		return WithLocation(NewIntLiteral(val), loc), nil
	case NodeStr:
		val, ok := node["value"].(string)
		if !ok {
			return nil, fmt.Errorf("%s: Str value must be a string, got %T", loc, node["value"])
		}
		return WithLocation(NewStrLiteral(val), loc), nil
	case NodeBool:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("%s: Bool value must be a boolean, got %T", loc, node["value"])
		}
		return WithLocation(NewBoolLiteral(val), loc), nil
	case NodeBinary:
		lhs, err := decodeChild(node, "lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := decodeChild(node, "rhs")
		if err != nil {
			return nil, err
		}
		op, _ := node["op"].(string)
		if !BinaryOp(op).Valid() {
			return nil, fmt.Errorf("%s: unknown binary operator %q", loc, op)
		}
		return WithLocation(NewBinaryExpression(lhs, BinaryOp(op), rhs), loc), nil
	case NodeVar:
		text, ok := node["text"].(string)
		if !ok || text == "" {
			return nil, fmt.Errorf("%s: Var requires text", loc)
		}
		return WithLocation(NewVariable(text), loc), nil
	case NodeLet:
		name, err := decodeParameter(node["name"])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid let name: %w", loc, err)
		}
		value, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		next, err := decodeChild(node, "next")
		if err != nil {
			return nil, err
		}
		let := NewLetExpression(name.Text, value, next)
		let.Name = name
		return WithLocation(let, loc), nil
	case NodeFunction:
		paramsVal, _ := node["parameters"].([]any)
		params := make([]Parameter, 0, len(paramsVal))
		for idx, raw := range paramsVal {
			param, err := decodeParameter(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid parameter %d: %w", loc, idx, err)
			}
			params = append(params, param)
		}
		body, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		fn := NewFunctionLiteral(nil, body)
		fn.Parameters = params
		return WithLocation(fn, loc), nil
	case NodeCall:
		callee, err := decodeChild(node, "callee")
		if err != nil {
			return nil, err
		}
		argsVal, _ := node["arguments"].([]any)
		args := make([]Term, 0, len(argsVal))
		for idx, raw := range argsVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: invalid argument %d %T", loc, idx, raw)
			}
			arg, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return WithLocation(NewCallExpression(callee, args), loc), nil
	case NodeIf:
		cond, err := decodeChild(node, "condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeChild(node, "then")
		if err != nil {
			return nil, err
		}
		otherwise, err := decodeChild(node, "otherwise")
		if err != nil {
			return nil, err
		}
		return WithLocation(NewIfExpression(cond, then, otherwise), loc), nil
	case NodeTuple:
		first, err := decodeChild(node, "first")
		if err != nil {
			return nil, err
		}
		second, err := decodeChild(node, "second")
		if err != nil {
			return nil, err
		}
		return WithLocation(NewTupleExpression(first, second), loc), nil
	case NodeFirst:
		value, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		return WithLocation(NewFirstExpression(value), loc), nil
	case NodeSecond:
		value, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		return WithLocation(NewSecondExpression(value), loc), nil
	case NodePrint:
		value, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		return WithLocation(NewPrintExpression(value), loc), nil
	case NodeError:
		message, _ := node["message"].(string)
		fullText, _ := node["full_text"].(string)
		return WithLocation(NewErrorNode(message, fullText), loc), nil
	case "":
		return nil, fmt.Errorf("%s: node is missing kind", loc)
	default:
		return nil, fmt.Errorf("%s: unsupported node kind %q", loc, kind)
	}
}

func decodeChild(node map[string]any, field string) (Term, error) {
	child, ok := node[field].(map[string]any)
	if !ok {
		kind, _ := node["kind"].(string)
		return nil, fmt.Errorf("%s: %s missing %s", decodeLocation(node["location"]), kind, field)
	}
	return decodeNode(child)
}

func decodeParameter(raw any) (Parameter, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Parameter{}, fmt.Errorf("expected object, got %T", raw)
	}
	text, _ := obj["text"].(string)
	if text == "" {
		return Parameter{}, fmt.Errorf("missing text")
	}
	return Parameter{Text: text, Location: decodeLocation(obj["location"])}, nil
}

func decodeLocation(raw any) Location {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Location{}
	}
	start, _ := decodeInt(obj["start"])
	end, _ := decodeInt(obj["end"])
	filename, _ := obj["filename"].(string)
	return Location{Start: int(start), End: int(end), Filename: filename}
}

func decodeInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		i, err := strconv.ParseInt(v.String(), 10, 64)
		if err == nil {
			return i, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("integer literal %s out of range", v.String())
		}
		return 0, fmt.Errorf("integer literal %s is not an integer", v.String())
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer literal %q", v)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("integer literal must be a number, got %T", raw)
	}
}
