package lr

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTableJSONRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	result, err := Analyze(arithGrammar(t, DefaultConflictMode))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteTable(result.Table(), &buf); err != nil {
		t.Fatal(err)
	}
	table, err := ReadTable(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table.Actions(), result.Table().Actions()) {
		t.Errorf("expected ACTION table to survive a round trip")
	}
	if !reflect.DeepEqual(table.Gotos(), result.Table().Gotos()) {
		t.Errorf("expected GOTO table to survive a round trip")
	}
	if !reflect.DeepEqual(table.Terminals(), result.Table().Terminals()) {
		t.Errorf("expected terminal columns to survive a round trip")
	}
	f1, _ := table.Fingerprint()
	f2, _ := result.Table().Fingerprint()
	if f1 != f2 {
		t.Errorf("expected fingerprints to be equal after a round trip")
	}
}

func TestTableJSONFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	result, err := Analyze(bracketGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	data, err := result.Table().MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	js := string(data)
	for _, frag := range []string{`"action":{`, `"1":{"$eof":0}`, `"goto":{"0":{"S":1}`} {
		if !strings.Contains(js, frag) {
			t.Errorf("expected JSON to contain %s, is %s", frag, js)
		}
	}
}

func TestReadTableErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	for _, input := range []string{
		`{"terminals": ["$eof"`,
		`{"terminals": ["$eof"], "nonterminals": [], "action": {"0": {"x": 1}}, "goto": {}}`,
		`{"terminals": ["$eof"], "nonterminals": [], "action": {"0": {"$eof": -1}}, "goto": {}}`,
	} {
		if _, err := ReadTable(strings.NewReader(input)); err == nil {
			t.Errorf("expected reading of %q to fail", input)
		}
	}
}

func TestTableAsHTML(t *testing.T) {
	result, err := Analyze(bracketGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := result.Table().TableAsHTML(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<td>state 4</td>") {
		t.Errorf("expected HTML table to contain a row for state 4")
	}
}
