// Package pipeline builds aggregation pipelines from typed stage descriptors so
// views can be composed and inspected without a live store.
package pipeline

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stage renders to exactly one aggregation stage document.
type Stage interface {
	Render() bson.D
}

// Pipeline is an ordered list of stages.
type Pipeline []Stage

func New(stages ...Stage) Pipeline {
	return Pipeline(stages)
}

// Then returns a new pipeline with stages appended; p is left untouched.
func (p Pipeline) Then(stages ...Stage) Pipeline {
	out := make(Pipeline, 0, len(p)+len(stages))
	out = append(out, p...)
	return append(out, stages...)
}

func (p Pipeline) Render() mongo.Pipeline {
	out := make(mongo.Pipeline, 0, len(p))
	for _, s := range p {
		out = append(out, s.Render())
	}
	return out
}

type Match struct {
	Filter bson.D
}

// MatchEq matches documents whose field equals value.
func MatchEq(field string, value any) Match {
	return Match{Filter: bson.D{{Key: field, Value: value}}}
}

func (m Match) Render() bson.D {
	filter := m.Filter
	if filter == nil {
		filter = bson.D{}
	}
	return bson.D{{Key: "$match", Value: filter}}
}

// Lookup joins From on LocalField = ForeignField into the array As. A nested
// Pipeline runs against the joined documents.
type Lookup struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
	Pipeline     Pipeline
}

func (l Lookup) Render() bson.D {
	doc := bson.D{
		{Key: "from", Value: l.From},
		{Key: "localField", Value: l.LocalField},
		{Key: "foreignField", Value: l.ForeignField},
		{Key: "as", Value: l.As},
	}
	if len(l.Pipeline) > 0 {
		doc = append(doc, bson.E{Key: "pipeline", Value: l.Pipeline.Render()})
	}
	return bson.D{{Key: "$lookup", Value: doc}}
}

// Expr is an aggregation expression.
type Expr struct {
	value any
}

func (e Expr) Value() any { return e.value }

func ref(path string) string { return "$" + path }

// Ref refers to a field path of the current document.
func Ref(path string) Expr { return Expr{value: ref(path)} }

// Size counts the elements of an array field.
func Size(path string) Expr {
	return Expr{value: bson.D{{Key: "$size", Value: ref(path)}}}
}

// Sum adds the numeric values at path across an array.
func Sum(path string) Expr {
	return Expr{value: bson.D{{Key: "$sum", Value: ref(path)}}}
}

// First flattens an array field to its first element.
func First(path string) Expr {
	return Expr{value: bson.D{{Key: "$first", Value: ref(path)}}}
}

// IsIn is true when value is an element of the array at path.
func IsIn(value any, path string) Expr {
	return Expr{value: bson.D{{Key: "$cond", Value: bson.D{
		{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{value, ref(path)}}}},
		{Key: "then", Value: true},
		{Key: "else", Value: false},
	}}}}
}

type Field struct {
	Name string
	Expr Expr
}

type AddFields []Field

func (a AddFields) Render() bson.D {
	doc := make(bson.D, 0, len(a))
	for _, f := range a {
		doc = append(doc, bson.E{Key: f.Name, Value: f.Expr.Value()})
	}
	return bson.D{{Key: "$addFields", Value: doc}}
}

// ProjectField is one entry of a projection allowlist.
type ProjectField struct {
	name  string
	value any
}

func Include(name string) ProjectField {
	return ProjectField{name: name, value: 1}
}

// Nest keeps only the listed sub-fields of an embedded document or array of documents.
func Nest(name string, fields ...ProjectField) ProjectField {
	return ProjectField{name: name, value: renderFields(fields)}
}

func Computed(name string, expr Expr) ProjectField {
	return ProjectField{name: name, value: expr.Value()}
}

type Projection struct {
	Fields []ProjectField
}

// Project builds an allowlist projection. Anything not listed, other than _id, is dropped.
func Project(fields ...ProjectField) Projection {
	return Projection{Fields: fields}
}

func (p Projection) Render() bson.D {
	return bson.D{{Key: "$project", Value: renderFields(p.Fields)}}
}

func renderFields(fields []ProjectField) bson.D {
	doc := make(bson.D, 0, len(fields))
	for _, f := range fields {
		doc = append(doc, bson.E{Key: f.name, Value: f.value})
	}
	return doc
}

type Unwind struct {
	Path                       string
	PreserveNullAndEmptyArrays bool
}

func (u Unwind) Render() bson.D {
	if !u.PreserveNullAndEmptyArrays {
		return bson.D{{Key: "$unwind", Value: ref(u.Path)}}
	}
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: ref(u.Path)},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}

// Sort orders by the given keys; 1 ascending, -1 descending.
type Sort bson.D

func (s Sort) Render() bson.D {
	return bson.D{{Key: "$sort", Value: bson.D(s)}}
}
