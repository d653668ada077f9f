// Package hep translates literature records between MARC and JSON.
//
// The forward rule set reads a legacy MARC record field by field; the
// filters that follow it merge what single fields cannot see on their own
// (arXiv categories spread over 037 and 65017, journal-only publication
// info, attachment keys and figure order) and enforce the literature
// defaults. The reverse rule set walks a JSON record key by key and emits
// MARC-JSON for marc.FromMarcJSON.
package hep

import (
	"github.com/lehigh-university-libraries/inspire-dojson/common"
	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/schema"
)

const (
	literature   = "literature"
	authors      = "authors"
	conferences  = "conferences"
	experiments  = "experiments"
	institutions = "institutions"
	journals     = "journals"
)

var (
	forward = &engine.Translator[marc.Field, *marc.Record]{
		Rules:   newForwardRules(),
		Filters: forwardFilters(),
	}
	reverse = &engine.Translator[any, map[string]any]{
		Rules:   newReverseRules(),
		Filters: reverseFilters(),
	}
)

// Forward returns the MARC to JSON translator.
func Forward() *engine.Translator[marc.Field, *marc.Record] {
	return forward
}

// Reverse returns the JSON to MARC translator. Its output is MARC-JSON.
func Reverse() *engine.Translator[any, map[string]any] {
	return reverse
}

// Translate converts a MARC record into a literature record.
func Translate(rec *marc.Record) (map[string]any, error) {
	return forward.Translate(rec.Items(), rec)
}

// TranslateReverse converts a literature record into MARC-JSON.
func TranslateReverse(rec map[string]any) (map[string]any, error) {
	return reverse.Translate(engine.Sorted(rec), rec)
}

func newForwardRules() *engine.Overdo[marc.Field] {
	o := engine.New[marc.Field]("hep")
	common.Forward(o, literature)
	identifierRules(o)
	titleRules(o)
	authorRules(o)
	publicationRules(o)
	noteRules(o)
	subjectRules(o)
	collectionRules(o)
	attachmentRules(o)
	referenceRules(o)
	return o
}

func newReverseRules() *engine.Overdo[any] {
	o := engine.New[any]("hep2marc")
	common.Reverse(o)
	identifierRules2marc(o)
	titleRules2marc(o)
	authorRules2marc(o)
	publicationRules2marc(o)
	noteRules2marc(o)
	subjectRules2marc(o)
	collectionRules2marc(o)
	attachmentRules2marc(o)
	referenceRules2marc(o)
	return o
}

func entity() *schema.Entity {
	e, ok := schema.Default.Get("hep")
	if !ok {
		panic("hep: entity not registered")
	}
	return e
}
