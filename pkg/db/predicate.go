package db

import (
	"fmt"
	"strings"
)

// Predicate builder for repository queries.
//
// SECURITY WARNING:
// Field names are NOT escaped or validated by this builder. They must come
// from trusted sources (entity column constants, sort allow-lists), never
// from user input. User input is only safe as the Value of a Condition,
// which is always parameterized in the final query.

// Operator represents a SQL comparison operator.
type Operator string

const (
	Equal     Operator = "="
	NotEqual  Operator = "!="
	Contains  Operator = "LIKE"
	In        Operator = "IN"
	IsNull    Operator = "IS NULL"
	IsNotNull Operator = "IS NOT NULL"
)

// Logical combines conditions within a group.
type Logical string

const (
	And Logical = "AND"
	Or  Logical = "OR"
)

// Condition is a single field comparison. For Contains the value is wrapped
// in wildcards at build time.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// Predicate is a composable boolean expression over entity fields. The zero
// value (or nil) matches all rows.
type Predicate struct {
	logic Logical
	parts []any // Condition or *Predicate
}

// Where starts a predicate with a single condition.
func Where(field string, op Operator, value any) *Predicate {
	return &Predicate{logic: And, parts: []any{Condition{Field: field, Operator: op, Value: value}}}
}

// Group wraps an existing predicate so it nests as one parenthesized unit.
func Group(p *Predicate) *Predicate {
	return &Predicate{logic: And, parts: []any{p}}
}

// And appends a condition joined with AND.
func (p *Predicate) And(field string, op Operator, value any) *Predicate {
	p.parts = append(p.parts, Condition{Field: field, Operator: op, Value: value})
	return p
}

// Or returns a predicate joining this one and another with OR.
func (p *Predicate) Or(other *Predicate) *Predicate {
	return &Predicate{logic: Or, parts: []any{p, other}}
}

// AndGroup appends a nested predicate joined with AND.
func (p *Predicate) AndGroup(other *Predicate) *Predicate {
	p.parts = append(p.parts, other)
	return p
}

// Build compiles the predicate to a parameterized WHERE fragment and its
// arguments. An empty predicate compiles to ("", nil), meaning "all rows".
func (p *Predicate) Build() (string, []any) {
	if p == nil || len(p.parts) == 0 {
		return "", nil
	}

	var clauses []string
	var args []any

	for _, part := range p.parts {
		switch v := part.(type) {
		case Condition:
			clause, condArgs := buildCondition(v)
			if clause == "" {
				continue
			}
			clauses = append(clauses, clause)
			args = append(args, condArgs...)
		case *Predicate:
			clause, nestedArgs := v.Build()
			if clause == "" {
				continue
			}
			clauses = append(clauses, "("+clause+")")
			args = append(args, nestedArgs...)
		}
	}

	logic := p.logic
	if logic == "" {
		logic = And
	}
	return strings.Join(clauses, " "+string(logic)+" "), args
}

func buildCondition(c Condition) (string, []any) {
	switch c.Operator {
	case IsNull, IsNotNull:
		return fmt.Sprintf("%s %s", c.Field, c.Operator), nil
	case Contains:
		return fmt.Sprintf("%s LIKE ?", c.Field), []any{"%" + fmt.Sprintf("%v", c.Value) + "%"}
	case In:
		return fmt.Sprintf("%s IN ?", c.Field), []any{c.Value}
	default:
		return fmt.Sprintf("%s %s ?", c.Field, c.Operator), []any{c.Value}
	}
}
