package schema_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	j "github.com/goccy/go-json"

	"github.com/sim0nx/meteolux-go/schema"
)

// decode parses a JSON literal the way the client funnel does, with numbers
// kept as json.Number.
func decode(t *testing.T, s string) any {
	t.Helper()
	dec := j.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func issuesOf(t *testing.T, err error) schema.Issues {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	iss, ok := schema.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %T: %v", err, err)
	}
	return iss
}

func TestObjectRequiredMissing(t *testing.T) {
	ctx := context.Background()
	typ, err := schema.Object().
		Field("id", schema.Int()).Required().
		Field("name", schema.String()).Required().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	_, perr := typ.Parse(ctx, decode(t, `{"id": 3}`))
	iss := issuesOf(t, perr)
	if len(iss) != 1 || iss[0].Code != schema.CodeRequired || iss[0].Path != "/name" {
		t.Fatalf("unexpected issues: %#v", iss)
	}
}

func TestObjectAliasLookup(t *testing.T) {
	ctx := context.Background()
	typ, err := schema.Object().
		Field("total_item_count", schema.Int()).Alias("totalItemCount").Required().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	v, perr := typ.Parse(ctx, decode(t, `{"totalItemCount": 1}`))
	if perr != nil {
		t.Fatalf("parse: %v", perr)
	}
	rec := v.(map[string]any)
	if rec["total_item_count"] != int64(1) {
		t.Fatalf("alias not resolved to internal name: %#v", rec)
	}

	// The internal name is not a lookup key once an alias is declared.
	_, perr = typ.Parse(ctx, decode(t, `{"total_item_count": 1}`))
	iss := issuesOf(t, perr)
	if iss[0].Code != schema.CodeRequired || iss[0].Path != "/totalItemCount" {
		t.Fatalf("unexpected issues: %#v", iss)
	}
}

func TestObjectDefaults(t *testing.T) {
	ctx := context.Background()
	typ, err := schema.Object().
		Field("doc_url", schema.String()).Alias("docUrl").Default("/docs").
		Field("licence", schema.Array(schema.String())).
		Default([]string{"Creative Commons", "https://creativecommons.org/public-domain/cc0/"}).
		Field("quality_codes", schema.StringMap()).Alias("qualityCodes").
		Default(map[string]string{"0": "Value is controlled and found O.K."}).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	v, perr := typ.Parse(ctx, decode(t, `{}`))
	if perr != nil {
		t.Fatalf("parse: %v", perr)
	}
	rec := v.(map[string]any)
	if rec["doc_url"] != "/docs" {
		t.Fatalf("scalar default not applied: %#v", rec)
	}
	lic, ok := rec["licence"].([]any)
	if !ok || len(lic) != 2 || lic[0] != "Creative Commons" {
		t.Fatalf("structured default not applied: %#v", rec["licence"])
	}
	qc, ok := rec["quality_codes"].(map[string]string)
	if !ok || qc["0"] != "Value is controlled and found O.K." {
		t.Fatalf("map default not applied: %#v", rec["quality_codes"])
	}

	// A present value wins over the default.
	v, perr = typ.Parse(ctx, decode(t, `{"docUrl": "/v2/docs"}`))
	if perr != nil {
		t.Fatalf("parse: %v", perr)
	}
	if v.(map[string]any)["doc_url"] != "/v2/docs" {
		t.Fatalf("default overrode a present value")
	}
}

func TestObjectNullVersusAbsent(t *testing.T) {
	ctx := context.Background()
	typ, err := schema.Object().
		Field("gusts", schema.Nullable(schema.String())).
		Field("speed", schema.String()).Required().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Absent optional: omitted from the record entirely.
	v, perr := typ.Parse(ctx, decode(t, `{"speed": "10kt"}`))
	if perr != nil {
		t.Fatalf("parse: %v", perr)
	}
	if _, present := v.(map[string]any)["gusts"]; present {
		t.Fatalf("absent optional should not appear in the record")
	}

	// Null on a nullable field: present as nil.
	v, perr = typ.Parse(ctx, decode(t, `{"speed": "10kt", "gusts": null}`))
	if perr != nil {
		t.Fatalf("parse: %v", perr)
	}
	if got, present := v.(map[string]any)["gusts"]; !present || got != nil {
		t.Fatalf("null should parse to a present nil, got %#v", got)
	}

	// Null on a non-nullable field is a type error, not absence.
	_, perr = typ.Parse(ctx, decode(t, `{"speed": null}`))
	iss := issuesOf(t, perr)
	if iss[0].Code != schema.CodeInvalidType || iss[0].Path != "/speed" {
		t.Fatalf("unexpected issues: %#v", iss)
	}
}

func TestObjectUnknownKeysIgnored(t *testing.T) {
	ctx := context.Background()
	typ, err := schema.Object().
		Field("id", schema.Int()).Required().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	v, perr := typ.Parse(ctx, decode(t, `{"id": 1, "introduced_later": true}`))
	if perr != nil {
		t.Fatalf("unknown key should be ignored: %v", perr)
	}
	if _, present := v.(map[string]any)["introduced_later"]; present {
		t.Fatalf("unknown key leaked into the record")
	}
}

func TestObjectParseIsDeterministic(t *testing.T) {
	ctx := context.Background()
	typ, err := schema.Object().
		Field("a", schema.Int()).Required().
		Field("b", schema.Array(schema.Float())).Required().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	in := decode(t, `{"a": 1, "b": [1.5, 2]}`)
	v1, err1 := typ.Parse(ctx, in)
	v2, err2 := typ.Parse(ctx, in)
	if err1 != nil || err2 != nil {
		t.Fatalf("parse: %v / %v", err1, err2)
	}
	if !reflect.DeepEqual(v1, v2) {
		t.Fatalf("parse is not idempotent: %#v vs %#v", v1, v2)
	}
}

func TestBindNestedStruct(t *testing.T) {
	type icon struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	type city struct {
		ID       int     `json:"id"`
		Name     string  `json:"name"`
		Lat      float64 `json:"lat"`
		Icon     icon    `json:"icon"`
		Nickname *string `json:"nickname"`
	}

	iconSchema := schema.MustBind[icon](schema.Object().
		Field("id", schema.Int()).Required().
		Field("name", schema.String()).Required())
	citySchema := schema.MustBind[city](schema.Object().
		Field("id", schema.Int()).Required().
		Field("name", schema.String()).Required().
		Field("lat", schema.Float()).Required().
		Field("icon", schema.AsType(iconSchema)).Required().
		Field("nickname", schema.Nullable(schema.String())))

	ctx := context.Background()
	got, err := citySchema.Parse(ctx, decode(t, `{
		"id": 1, "name": "Luxembourg", "lat": 49.6116,
		"icon": {"id": 1, "name": "sun"}, "nickname": null
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.ID != 1 || got.Name != "Luxembourg" || got.Lat != 49.6116 {
		t.Fatalf("unexpected record: %#v", got)
	}
	if got.Icon.Name != "sun" {
		t.Fatalf("nested struct not bound: %#v", got.Icon)
	}
	if got.Nickname != nil {
		t.Fatalf("null should bind to a nil pointer, got %#v", got.Nickname)
	}
}

func TestIssuePathsRecurse(t *testing.T) {
	type item struct {
		Qty int `json:"qty"`
	}
	itemSchema := schema.MustBind[item](schema.Object().
		Field("qty", schema.Min(schema.Int(), 0)).Required())
	typ, err := schema.Object().
		Field("items", schema.Array(schema.AsType(itemSchema))).Required().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	ctx := context.Background()
	_, perr := typ.Parse(ctx, decode(t, `{"items": [{"qty": 2}, {"qty": -1}]}`))
	iss := issuesOf(t, perr)
	if len(iss) != 1 || iss[0].Code != schema.CodeTooSmall || iss[0].Path != "/items/1/qty" {
		t.Fatalf("unexpected issues: %#v", iss)
	}
}
